// Package transport carries gatesim command and update messages between
// an Engine and a host process over the wire. It supplies two codecs —
// a tolerant/dynamic JSON form built on gjson/sjson and a compact binary
// form built on cbor — plus a uuid-tagged Session used to correlate a
// host connection's commands with the log lines the engine emits while
// handling them.
package transport
