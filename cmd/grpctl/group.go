package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

type createCommand struct {
	Args struct {
		Name    string   `positional-arg-name:"name" required:"yes"`
		Members []string `positional-arg-name:"member-id" required:"yes"`
	} `positional-args:"yes"`
}

func (cmd *createCommand) Execute(args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	c, cleanup, err := openClient(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	groupID, err := c.CreateGroup(ctx, cmd.Args.Name, cmd.Args.Members)
	if err != nil {
		return fmt.Errorf("create group: %w", err)
	}
	fmt.Printf("Created group %s\n", groupID)
	return nil
}

type addMembersCommand struct {
	Args struct {
		GroupID string   `positional-arg-name:"group-id" required:"yes"`
		Members []string `positional-arg-name:"member-id" required:"yes"`
	} `positional-args:"yes"`
}

func (cmd *addMembersCommand) Execute(args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	c, cleanup, err := openClient(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := c.AddMembers(ctx, cmd.Args.GroupID, cmd.Args.Members); err != nil {
		return fmt.Errorf("add members: %w", err)
	}
	fmt.Printf("Added %d member(s).\n", len(cmd.Args.Members))
	return nil
}

type removeMembersCommand struct {
	Args struct {
		GroupID string   `positional-arg-name:"group-id" required:"yes"`
		Members []string `positional-arg-name:"member-id" required:"yes"`
	} `positional-args:"yes"`
}

func (cmd *removeMembersCommand) Execute(args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	c, cleanup, err := openClient(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := c.RemoveMembers(ctx, cmd.Args.GroupID, cmd.Args.Members); err != nil {
		return fmt.Errorf("remove members: %w", err)
	}
	fmt.Println("Members removed, group key rotated.")
	return nil
}

type leaveCommand struct {
	Args struct {
		GroupID string `positional-arg-name:"group-id" required:"yes"`
	} `positional-args:"yes"`
}

func (cmd *leaveCommand) Execute(args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	c, cleanup, err := openClient(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := c.LeaveGroup(ctx, cmd.Args.GroupID); err != nil {
		return fmt.Errorf("leave group: %w", err)
	}
	fmt.Println("Left group.")
	return nil
}

type resendKeyCommand struct {
	Args struct {
		GroupID  string `positional-arg-name:"group-id" required:"yes"`
		MemberID string `positional-arg-name:"member-id" required:"yes"`
	} `positional-args:"yes"`
}

func (cmd *resendKeyCommand) Execute(args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	c, cleanup, err := openClient(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := c.ResendKeyPair(ctx, cmd.Args.GroupID, cmd.Args.MemberID); err != nil {
		return fmt.Errorf("resend key: %w", err)
	}
	fmt.Println("Latest key sent.")
	return nil
}

type retryRotationCommand struct {
	Args struct {
		GroupID string `positional-arg-name:"group-id" required:"yes"`
	} `positional-args:"yes"`
}

func (cmd *retryRotationCommand) Execute(args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	c, cleanup, err := openClient(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := c.RetryPendingRotation(ctx, cmd.Args.GroupID); err != nil {
		return fmt.Errorf("retry rotation: %w", err)
	}
	fmt.Println("Rotation committed.")
	return nil
}

type purgeCommand struct {
	Args struct {
		GroupID string `positional-arg-name:"group-id" required:"yes"`
	} `positional-args:"yes"`
}

func (cmd *purgeCommand) Execute(args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	c, cleanup, err := openClient(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := c.PurgeGroup(cmd.Args.GroupID); err != nil {
		return fmt.Errorf("purge group: %w", err)
	}
	fmt.Println("Local group state deleted.")
	return nil
}

type purgeDedupeCommand struct{}

func (cmd *purgeDedupeCommand) Execute(args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	c, cleanup, err := openClient(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := c.PurgeDedupe(); err != nil {
		return fmt.Errorf("purge dedupe: %w", err)
	}
	fmt.Println("Duplicate-receive records deleted.")
	return nil
}
