// Copyright 2020 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

//go:build !invariants && !race

package invariants

// Enabled is false in this build; the invariants and race build tags are
// both absent. Checks gated behind Enabled compile to nothing.
const Enabled = false
