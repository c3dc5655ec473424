// Package rdm implements the RDM typed configuration format: a
// human-readable text file of named sections holding typed key-value
// entries, with round-trip (de)serialization, runtime validation of
// values against declared types, a pluggable registry for custom
// scalar types, and in-place mutation operations that respect each
// entry's declared type.
//
// Quick Start:
//
//	obj := rdm.New()
//	user := obj.Section("user")
//	_ = user.Set("name", rdm.TextType, "Co")
//	_ = user.Set("score", rdm.IntegerType, 10)
//	_ = user.Add("score", 5)
//	_ = obj.Save("profile.rdm")
//
//	loaded, err := rdm.Load("profile.rdm")
//
// The on-disk form:
//
//	[user]
//	name  : text    = "Co"
//	score : integer = 15
//
// Type expressions cover scalars (text, integer, float, boolean,
// timestamp, date, time-of-day, filesystem-path, none), parameterized
// containers (sequence[...], set[...], tuple[...], mapping[k, v]) and
// unions (integer | none).
//
// Get returns stored values without copying while Set deep-copies
// mutable containers on the way in; callers that mutate a value
// obtained from Get are mutating the stored entry. An Obj and its
// sections are exclusively owned by their caller and are not safe for
// concurrent use.
package rdm
