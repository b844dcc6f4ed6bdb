package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

type receiveCommand struct {
	N int `short:"n" description:"Maximum number of messages to process (0 = unlimited)" default:"0"`
}

func (cmd *receiveCommand) Execute(args []string) error {
	if opts.Relay == "" {
		return fmt.Errorf("receive requires --relay")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	c, cleanup, err := openClient(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	fmt.Println("Listening for control messages... (Ctrl+C to stop)")

	count := 0
	for msg, err := range c.Receive(ctx) {
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		fmt.Printf("%s  %s  from %s\n", msg.Payload.Kind(), msg.GroupID, msg.Sender)
		count++
		if cmd.N > 0 && count >= cmd.N {
			break
		}
	}

	return nil
}
