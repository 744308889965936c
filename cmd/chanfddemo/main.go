// Command chanfddemo exercises a chanfd channel the way an external
// multiplexer would: it polls the channel's receiver descriptor with
// golang.org/x/sys/unix.Poll instead of calling Recv directly, the same
// read-only-fd discipline spec §4.5 requires.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"golang.org/x/sys/unix"

	"chanfd/typed"
)

func main() {
	capacity := flag.Int("capacity", 1, "channel capacity (0 = unbuffered rendezvous)")
	count := flag.Int("count", 5, "number of int32 values to send")
	flag.Parse()

	ch, err := typed.NewChannel[int32](*capacity)
	if err != nil {
		log.Fatalf("chanfddemo: create: %v", err)
	}
	defer ch.Destroy()

	go func() {
		for i := int32(0); i < int32(*count); i++ {
			if err := ch.Send(i); err != nil {
				log.Fatalf("chanfddemo: send: %v", err)
			}
			time.Sleep(10 * time.Millisecond)
		}
	}()

	fds := []unix.PollFd{{Fd: int32(ch.ReceiverFD()), Events: unix.POLLIN}}
	for received := 0; received < *count; {
		n, err := unix.Poll(fds, 1000)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			log.Fatalf("chanfddemo: poll: %v", err)
		}
		if n == 0 {
			fmt.Println("chanfddemo: poll timed out waiting for a value")
			continue
		}
		if fds[0].Revents&unix.POLLIN == 0 {
			continue
		}
		v, err := ch.Recv()
		if err != nil {
			log.Fatalf("chanfddemo: recv: %v", err)
		}
		fmt.Println("received:", v)
		received++
	}
}
