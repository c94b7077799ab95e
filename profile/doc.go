// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

/*
Package profile implements the legacy profile string API on files: reading a
value with a default, listing section names and keys, and setting or deleting
values.

Every call reads and parses the file again, so callers always observe the
file's current content. Reads return results the way the legacy functions
fill their output buffers, including their quirks:

  - A default value loses its trailing blanks.
  - A result that does not fit the caller's capacity is truncated and reported
    with an error of kind MoreData.
  - A value of exactly 65536 characters reads as empty, and longer values are
    cut to their length modulo 65536.

Lengths and capacities count UTF-16 code units.

Errors returned by this package have type *Error and can be matched with
errors.Is against the Kind constants:

	v, _, err := profile.GetValue(ctx, "app.ini", "window", "title", "Untitled", 256)
	if err != nil && !errors.Is(err, profile.NotFound) {
		return err
	}
*/
package profile
