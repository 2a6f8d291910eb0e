// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

  - CreateAreaRequest: name, coordinates, userId

# Response Types

  - DeleteAreaResponse: success
  - ErrorResponse: error, details

# Domain Types

  - Area: a named polygon (at least three ordered coordinate pairs)
    owned by a user. Serialised as:

	{"_id": "...", "name": "Connaught Place", "coordinates": [[28.63, 77.21], ...], "userId": "user1"}

# Constants

	DefaultUserID = "user1"
	MinAreaPoints = 3
*/
package models
