// Package api defines the credkit wire contract: request and response
// messages, the protobuf codec they travel in, the gRPC service descriptor
// the daemon registers and the client stub the CLI calls through.
//
// Messages are plain structs that encode themselves with protowire
// according to credkit.proto, so the codec is forced on both ends
// (grpc.ForceServerCodec on the server, the CallOption returned by
// CallCodec on the client). Passwords and hash inputs are bytes fields and
// reach the daemon exactly as the client read them.
package api
