// Package icons holds the naming rules shared by every iconkit output.
//
// Icon identifiers are the kebab or snake case file stems used by the
// upstream icon set ("a-arrow-down"). Generated components use PascalCase
// names with an "Icon" suffix ("AArrowDownIcon"). The catalog helpers render
// the discovered icon set as documentation.
package icons
