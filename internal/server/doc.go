// Package server provides the HTTP surface of the LightRAG MCP gateway.
//
// One port multiplexes two interaction modes:
//
//   - Synchronous actions: POST with a JSON {action, data} body, routed
//     through the action dispatcher. The HTTP transaction always succeeds;
//     logical failure is carried in the body's status field.
//   - Streaming: any GET with Accept: text/event-stream becomes a
//     Server-Sent-Events session that emits a fixed bootstrap sequence
//     (connected, tools, capabilities), drains the shared event queue
//     opportunistically, and heartbeats on a fixed cadence until the peer
//     disconnects.
//
// The two paths meet at the event queue: every dispatched result is
// published there, so a synchronous caller and any streaming observer
// eventually see the same payload. Delivery to sessions is at-most-once,
// first consumer wins.
//
// Plain GETs serve snapshots: /health for liveness, /capabilities and
// /tools for JSON metadata, everything else a text banner.
package server
