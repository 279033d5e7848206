// @focus: #x11 { xkb }
// Package x11 speaks the XKB keyboard extension over a jezek/xgb connection.
//
// Features:
//   - Extension handshake with protocol version negotiation
//   - Modifier state and controls queries against the core keyboard
//   - Event selection for state, controls and AccessX notifications
//   - Decoding of the shared-code XKB event family
//
// The XKB extension multiplexes all of its event types onto the single
// event code assigned at QueryExtension time; the concrete type is the
// byte at offset 1 of the wire event. Requests and replies are encoded
// by hand against the protocol layouts, so no part of this package
// depends on code generation.
package x11
