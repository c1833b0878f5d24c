// Package lwp owns the LEGO(c) BLE Wireless Protocol 3.0 type contract.
//
// Ownership boundary:
// - catalog constants (message types, device types, sub-commands, ...)
// - name<->code registry lookups
// - movement constants and directional value arithmetic
//
// The catalogs are closed, compile-time-fixed tables. Byte values are
// dictated by the wireless protocol and must not change.
package lwp
