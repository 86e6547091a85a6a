//go:build debug

package jobs

const debugDescriptions = true
