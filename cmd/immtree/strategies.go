// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/immtree"
)

// strategyList is a flag value holding one or more strategies.
type strategyList []immtree.Strategy

func (l *strategyList) String() string {
	names := make([]string, len(*l))
	for i, s := range *l {
		names[i] = s.String()
	}
	return strings.Join(names, ",")
}

func (l *strategyList) Set(v string) error {
	var parsed strategyList
	for _, name := range strings.Split(v, ",") {
		s, err := immtree.ParseStrategy(name)
		if err != nil {
			return err
		}
		parsed = append(parsed, s)
	}
	if len(parsed) == 0 {
		return errors.New("no strategy given")
	}
	*l = parsed
	return nil
}

func (l *strategyList) Type() string {
	return "strategies"
}
