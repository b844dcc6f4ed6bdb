package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"os/signal"

	"github.com/opensesh/groupcore/internal/protoerr"
)

type groupsCommand struct{}

func (cmd *groupsCommand) Execute(args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	c, cleanup, err := openClient(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	groups, err := c.Groups()
	if err != nil {
		return fmt.Errorf("list groups: %w", err)
	}
	if len(groups) == 0 {
		fmt.Println("No groups found.")
		return nil
	}

	fmt.Printf("Found %d group(s):\n\n", len(groups))
	for _, g := range groups {
		name := g.Name
		if name == "" {
			name = "(unnamed)"
		}
		state := "active"
		if !g.IsActive {
			state = "inactive"
		}
		if g.IsInvited {
			state += ", invited"
		}
		fmt.Printf("  %s\n", name)
		fmt.Printf("    ID:     %s\n", g.GroupID)
		fmt.Printf("    Formed: %s\n", g.FormedAt.Format("2006-01-02 15:04"))
		fmt.Printf("    State:  %s\n", state)
		fmt.Println()
	}
	return nil
}

type membersCommand struct {
	Args struct {
		GroupID string `positional-arg-name:"group-id" required:"yes"`
	} `positional-args:"yes"`
}

func (cmd *membersCommand) Execute(args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	c, cleanup, err := openClient(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	g, err := c.GetGroup(cmd.Args.GroupID)
	if err != nil {
		return fmt.Errorf("list members: %w", err)
	}
	if g == nil {
		return fmt.Errorf("group %s: %w", cmd.Args.GroupID, protoerr.ErrNotFound)
	}

	members, err := c.Members(cmd.Args.GroupID)
	if err != nil {
		return fmt.Errorf("list members: %w", err)
	}
	if len(members) == 0 {
		fmt.Println("No members found.")
		return nil
	}

	for _, m := range members {
		fmt.Printf("  %s  %s/%s\n", m.ProfileID, m.Role, m.RoleStatus)
	}
	return nil
}

type keysCommand struct {
	Args struct {
		GroupID string `positional-arg-name:"group-id" required:"yes"`
	} `positional-args:"yes"`
}

func (cmd *keysCommand) Execute(args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	c, cleanup, err := openClient(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	g, err := c.GetGroup(cmd.Args.GroupID)
	if err != nil {
		return fmt.Errorf("list keys: %w", err)
	}
	if g == nil {
		return fmt.Errorf("group %s: %w", cmd.Args.GroupID, protoerr.ErrNotFound)
	}

	pairs, err := c.GroupKeyPairs(cmd.Args.GroupID)
	if err != nil {
		return fmt.Errorf("list keys: %w", err)
	}
	if len(pairs) == 0 {
		fmt.Println("No key pairs stored.")
		return nil
	}

	for i, p := range pairs {
		marker := " "
		if i == len(pairs)-1 {
			marker = "*"
		}
		fmt.Printf("%s %s  received %s\n", marker, hex.EncodeToString(p.PublicKey), p.ReceivedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}
