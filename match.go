/*
 *    Copyright 2025 The Pika Authors
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *        http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */

package pika

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	slugRe = regexp.MustCompile(`[A-Za-z0-9_-]`)

	// HTML5 email pattern (WHATWG "valid email address").
	emailRe = regexp.MustCompile(`^[A-Za-z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[A-Za-z0-9](?:[A-Za-z0-9-]{0,61}[A-Za-z0-9])?(?:\.[A-Za-z0-9](?:[A-Za-z0-9-]{0,61}[A-Za-z0-9])?)*$`)
)

// Int matches segments that parse as an optionally signed base-10 integer.
func Int() Predicate {
	return func(seg string) bool {
		_, err := strconv.ParseInt(seg, 10, 64)
		return err == nil
	}
}

// Float matches segments that parse as a floating-point literal.
func Float() Predicate {
	return func(seg string) bool {
		_, err := strconv.ParseFloat(seg, 64)
		return err == nil
	}
}

// Bool matches the case-insensitive truthy words {1, true, on, yes} and falsy
// words {0, false, off, no}. Use BoolValue to recover the truth value.
func Bool() Predicate {
	return func(seg string) bool {
		_, ok := BoolValue(seg)
		return ok
	}
}

// BoolValue interprets a segment accepted by Bool, returning its truth value
// and whether the segment was a recognized boolean word.
func BoolValue(seg string) (value, ok bool) {
	switch strings.ToLower(seg) {
	case "1", "true", "on", "yes":
		return true, true
	case "0", "false", "off", "no":
		return false, true
	}
	return false, false
}

// Slug matches segments containing at least one character from
// [A-Za-z0-9_-]. Note this is a contains check, not a whole-segment match:
// "héllo!" is accepted because of the "h". Kept as-is for compatibility.
func Slug() Predicate {
	return func(seg string) bool {
		return slugRe.MatchString(seg)
	}
}

// Email matches segments that are syntactically valid email addresses.
func Email() Predicate {
	return func(seg string) bool {
		return emailRe.MatchString(seg)
	}
}
