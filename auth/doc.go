// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth holds the identity helpers of the API.

There is no sign-in yet: callers pass the owning user id explicitly on every
request (query parameter or body field). ValidateUserID rejects empty,
oversized, or control-character ids.

# IP Hashing

Client addresses are never logged in clear by the locate endpoint:

	salt, _ := auth.GenerateSalt(16)
	hash := auth.HashIP(ip, salt)

The salt is generated per process, so hashes only correlate log lines of one
run.
*/
package auth
