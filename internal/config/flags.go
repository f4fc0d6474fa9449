// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses the process command line.
//
// Flags:
//
//	-a diagnostics API address in format [host]:[port]
//	-device-url xAPI websocket URL
//	-device-user / -device-password xAPI credentials
//	-feedback comma-separated feedback paths
//	-transport websocket or http
//	-directory-url REST directory service base URL
//	-page-limit records per page
//	-paging offset or single
//	-scopes comma-separated phonebook types
//	-search-timeout unanswered search timeout (e.g., "1m")
//	-sweep-interval expiry check interval (e.g., "10s")
//	-c/-config json file path with configs
func ParseFlags() (*StructuredConfig, error) {
	return parseFlags(os.Args[0], os.Args[1:])
}

func parseFlags(name string, args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	var serverAddress NetAddress
	var deviceURL, deviceUser, devicePassword, feedback string
	var transport, directoryURL, paging, scopes string
	var pageLimit int
	var searchTimeout, sweepInterval time.Duration
	var jsonConfigPath string

	fs.Var(&serverAddress, "a", "Diagnostics API address host:port")
	fs.StringVar(&deviceURL, "device-url", "", "xAPI websocket URL")
	fs.StringVar(&deviceUser, "device-user", "", "xAPI username")
	fs.StringVar(&devicePassword, "device-password", "", "xAPI password")
	fs.StringVar(&feedback, "feedback", "", "Comma-separated feedback paths")
	fs.StringVar(&transport, "transport", "", "Search transport: websocket or http")
	fs.StringVar(&directoryURL, "directory-url", "", "REST directory service base URL")
	fs.IntVar(&pageLimit, "page-limit", 0, "Records per page")
	fs.StringVar(&paging, "paging", "", "Paging mode: offset or single")
	fs.StringVar(&scopes, "scopes", "", "Comma-separated phonebook types")
	fs.DurationVar(&searchTimeout, "search-timeout", 0, "Unanswered search timeout (e.g., 1m)")
	fs.DurationVar(&sweepInterval, "sweep-interval", 0, "Expiry check interval (e.g., 10s)")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		Device: Device{
			URL:      deviceURL,
			Username: deviceUser,
			Password: devicePassword,
			Feedback: splitList(feedback),
		},
		Directory: Directory{
			Transport:  transport,
			ServiceURL: directoryURL,
			PageLimit:  pageLimit,
			Paging:     paging,
			Scopes:     splitList(scopes),
		},
		Server: Server{
			HTTPAddress: serverAddress.String(),
		},
		Workers: Workers{
			SearchTimeout: searchTimeout,
			SweepInterval: sweepInterval,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns the empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range and checks IP correctness unless the host is
// "localhost" or empty.
func (a *NetAddress) Set(s string) error {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "" && host != "localhost" && net.ParseIP(host) == nil {
		return errors.New("incorrect IP-address provided")
	}

	a.Host = host
	a.Port = port
	return nil
}
