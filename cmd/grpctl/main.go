// Command grpctl manages closed-group state from the command line.
//
// Usage:
//
//	grpctl init                      Generate a local identity
//	grpctl create <name> <id>...     Form a new group
//	grpctl groups                    List known groups
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	flags "github.com/jessevdk/go-flags"

	client "github.com/opensesh/groupcore"
	"github.com/opensesh/groupcore/internal/transport"
)

type globalOpts struct {
	DB      string `long:"db" description:"Path to database file"`
	Relay   string `long:"relay" description:"WebSocket URL of the message relay (required for commands that send)"`
	Verbose bool   `short:"v" long:"verbose" description:"Enable verbose logging"`

	Init          initCommand          `command:"init" description:"Generate and store a local identity"`
	Create        createCommand        `command:"create" description:"Form a new group and invite members"`
	AddMembers    addMembersCommand    `command:"add-members" description:"Invite members to an existing group"`
	RemoveMembers removeMembersCommand `command:"remove-members" description:"Remove members and rotate the group key"`
	Leave         leaveCommand         `command:"leave" description:"Leave a group"`
	ResendKey     resendKeyCommand     `command:"resend-key" description:"Resend the latest group key to one member"`
	RetryRotation retryRotationCommand `command:"retry-rotation" description:"Resume an uncommitted key rotation"`
	Receive       receiveCommand       `command:"receive" description:"Receive and process incoming control messages"`
	Groups        groupsCommand        `command:"groups" description:"List known groups"`
	Members       membersCommand       `command:"members" description:"List members of a group"`
	Keys          keysCommand          `command:"keys" description:"List stored key pairs of a group"`
	Purge         purgeCommand         `command:"purge" description:"Delete all local state for a group"`
	PurgeDedupe   purgeDedupeCommand   `command:"purge-dedupe" description:"Delete duplicate-receive records"`
}

var opts globalOpts

func main() {
	parser := flags.NewParser(&opts, flags.Default)
	parser.SubcommandsOptional = false

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
}

// offlineSender backs commands that only inspect local state. Any attempt
// to send means the command actually needed a relay.
type offlineSender struct{}

func (offlineSender) Send(context.Context, transport.Prepared) error {
	return fmt.Errorf("no relay configured (use --relay)")
}

// openClient loads the stored identity and opens the local state. When a
// relay URL is configured, outbound messages go over it; otherwise sending
// fails with a pointer to --relay.
func openClient(ctx context.Context) (*client.Client, func(), error) {
	id, err := loadIdentity()
	if err != nil {
		return nil, nil, err
	}

	var sender client.Sender = offlineSender{}
	var closeWS func()
	if opts.Relay != "" {
		ws, err := transport.DialWS(ctx, opts.Relay, nil)
		if err != nil {
			return nil, nil, err
		}
		sender = ws
		closeWS = func() { ws.Close() }
	}

	copts := []client.Option{
		client.WithSender(sender),
		client.WithDedupeKey(id.DedupeKey()),
	}
	if opts.DB != "" {
		copts = append(copts, client.WithDBPath(opts.DB))
	}
	if opts.Verbose {
		copts = append(copts, client.WithLogger(log.New(os.Stderr, "", log.LstdFlags)))
	}

	c, err := client.Open(id.SessionID(), id.KeyPair(), copts...)
	if err != nil {
		if closeWS != nil {
			closeWS()
		}
		return nil, nil, err
	}
	cleanup := func() {
		c.Close()
		if closeWS != nil {
			closeWS()
		}
	}
	return c, cleanup, nil
}
