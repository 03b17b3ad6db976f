/*
Package passsdk provides a client SDK for the event pass service.

# Overview

The package is organized around two types:

  - SDKClient: public endpoints (registration, event listing, health)
  - Session: bearer-authenticated endpoints (events, passes, dispatch)

Register a user to obtain a session:

	client := passsdk.NewSDKClient("http://localhost:3000")

	session, err := client.Register(ctx, passsdk.RegisterRequest{
		Name:  "Ada",
		Phone: "+61400000000",
		Email: "ada@example.com",
	})

	eventID, err := session.CreateEvent(ctx, passsdk.EventRequest{...})
	passID, err := session.CreatePass(ctx, eventID, "Gold")

# Errors

Non-2xx responses are returned as *APIError carrying the status code, the
"error" message and, for validation failures, the per-field errors.

The request and response types in this package are also the wire types used
by the server handlers.
*/
package passsdk
