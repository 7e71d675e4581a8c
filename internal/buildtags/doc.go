// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package buildtags exposes the build tags the binary was compiled with as
// constants, so that code can branch on them without its own tagged files.
package buildtags
