// Package wirepb contains generated protobuf types for the websocket
// control-message framing. Edit frame.proto and regenerate; never edit the
// .pb.go output by hand.
package wirepb

//go:generate protoc --go_out=. --go_opt=paths=source_relative frame.proto
