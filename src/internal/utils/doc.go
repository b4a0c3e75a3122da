// Package utils provides small helpers shared by ifselect packages.
//
// # Components
//
//   - Netmask helpers: convert kernel masks and prefix lengths to netip.Addr
//   - Path helpers: resolve relative paths and expand "~/"
//
// # Example Usage
//
//	mask := utils.PrefixNetmask(netip.MustParsePrefix("10.0.0.0/24"))
//
//	path := utils.ExpandHome("~/.ifselect.conf")
package utils
