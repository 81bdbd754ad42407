// Package control implements clockctl: it connects to a running widget's
// control address and arms the alarm, drives the stopwatch or prints status.
package control
