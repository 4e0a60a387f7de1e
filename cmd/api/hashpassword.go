// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/taibuivan/syncbridge/internal/platform/sec"
)

// hashPasswordCommand is the argument that switches the binary into
// digest-printing mode instead of serving HTTP.
const hashPasswordCommand = "hash-password"

/*
runHashPassword reads one password line from in and writes the bcrypt digest
for ADMIN_PASSWORD_HASH to out.

Usage:

	printf '%s' "$PASSWORD" | api hash-password
*/
func runHashPassword(in io.Reader, out io.Writer) error {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read password: %w", err)
	}

	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return errors.New("password must not be empty")
	}

	digest, err := sec.HashAdminPassword(password)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, digest)
	return err
}
