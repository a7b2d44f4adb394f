// Package service is the single write entry point of the key/value
// server. It serialises access to the ordered engine, stamps every
// mutation with a revision, and queues a change event for broadcast.
//
// Transports such as gRPC sit on top of KVService and never touch the
// engine directly.
package service
