// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package client is a typed HTTP client for the Audience Choice API.

	c := client.New("http://localhost:3318")
	boot, err := c.Bootstrap(ctx) // founders + settings, fetched concurrently

Non-2xx responses are returned as *APIError, which carries the server's
detail message and machine-readable reason:

	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Reason == models.ReasonAlreadyVoted {
		...
	}

Admin calls send the X-Admin-Key header from Client.AdminKey.
*/
package client
