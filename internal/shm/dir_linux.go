//go:build linux

package shm

func defaultDir() string { return "/dev/shm" }
