// Copyright 2022 p1nant0m <wgblike@gmail.com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

// Package ircconn is a pull-style irc client session: the caller reads one
// message at a time and the session answers the protocol chatter (PING,
// nick collisions, joins after the MOTD) on the way through.
package ircconn

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/p1nant0m/ircpump/config"
	"github.com/sirupsen/logrus"
	"gopkg.in/irc.v3"
)

const (
	DialTimeout = 30 * time.Second

	rplWelcome       = "001"
	rplEndOfMOTD     = "376"
	errNoMOTD        = "422"
	errNicknameInUse = "433"
)

// Session is owned by a single goroutine; it is not safe for concurrent use.
type Session struct {
	conn *irc.Conn
	rwc  io.ReadWriteCloser
	conf config.IRC

	nick       string
	altIndex   int
	registered bool
	joined     bool
}

// Dial connects to the configured server, over TLS when use_ssl is set.
// Registration is left to Identify.
func Dial(ctx context.Context, conf config.IRC) (*Session, error) {
	addr := net.JoinHostPort(conf.Server, strconv.Itoa(conf.Port))
	dialer := &net.Dialer{Timeout: DialTimeout}

	var (
		conn net.Conn
		err  error
	)
	if conf.UseSSL {
		tlsDialer := &tls.Dialer{NetDialer: dialer, Config: &tls.Config{ServerName: conf.Server}}
		conn, err = tlsDialer.DialContext(ctx, "tcp", addr)
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"server": addr,
		"tls":    conf.UseSSL,
	}).Info("connected to irc server")

	return newSession(conn, conf), nil
}

func newSession(rwc io.ReadWriteCloser, conf config.IRC) *Session {
	return &Session{
		conn: irc.NewConn(rwc),
		rwc:  rwc,
		conf: conf,
		nick: conf.Nickname,
	}
}

// Next blocks until the next message arrives. Every message is returned,
// including the ones the session reacted to itself.
func (s *Session) Next() (fmt.Stringer, error) {
	m, err := s.ReadMessage()
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ReadMessage is Next with the concrete message type.
func (s *Session) ReadMessage() (*irc.Message, error) {
	m, err := s.conn.ReadMessage()
	if err != nil {
		return nil, err
	}

	fields := logrus.Fields{"command": m.Command, "params": m.Params}
	if m.Prefix != nil {
		fields["prefix"] = m.Prefix.String()
	}
	logrus.WithFields(fields).Debug("irc message read")

	if err := s.react(m); err != nil {
		return nil, err
	}

	return m, nil
}

func (s *Session) react(m *irc.Message) error {
	switch m.Command {
	case "PING":
		return s.write("PONG", m.Params...)
	case rplWelcome:
		s.registered = true
	case errNicknameInUse:
		if !s.registered {
			return s.write("NICK", s.nextNick())
		}
	case rplEndOfMOTD, errNoMOTD:
		s.registered = true
		if !s.joined {
			s.joined = true
			return s.joinChannels()
		}
	}
	return nil
}

// nextNick walks through alt_nicks and then keeps appending underscores.
func (s *Session) nextNick() string {
	if s.altIndex < len(s.conf.AltNicks) {
		s.nick = s.conf.AltNicks[s.altIndex]
		s.altIndex++
	} else {
		s.nick += "_"
	}
	return s.nick
}

func (s *Session) joinChannels() error {
	if s.conf.NickPassword != "" {
		if err := s.write("PRIVMSG", "NickServ", "IDENTIFY "+s.conf.NickPassword); err != nil {
			return err
		}
	}

	if len(s.conf.Channels) == 0 {
		return nil
	}
	return s.write("JOIN", strings.Join(s.conf.Channels, ","))
}

// Identify registers the connection: PASS when a server password is set,
// then NICK and USER.
func (s *Session) Identify() error {
	if s.conf.Password != "" {
		if err := s.write("PASS", s.conf.Password); err != nil {
			return err
		}
	}
	if err := s.write("NICK", s.nick); err != nil {
		return err
	}
	return s.write("USER", s.conf.Username, "0", "*", s.conf.Realname)
}

// Nick is the nickname currently requested from the server.
func (s *Session) Nick() string {
	return s.nick
}

func (s *Session) Close() error {
	return s.rwc.Close()
}

func (s *Session) write(command string, params ...string) error {
	return s.conn.WriteMessage(&irc.Message{Command: command, Params: params})
}
