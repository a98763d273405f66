// Package example holds a small protocol and the packages wiregen generates
// from it. Run go generate here after editing protocol.xml.
package example

//go:generate go run github.com/vuuvv/wiregen/cmd/wiregen -config wiregen.yaml generate
