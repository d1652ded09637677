// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package vote connects validation, encoding and storage.

On write:

	vote → ballot.Validator → ballot.Codec.Encode → db.Store.Put

On read:

	db.Store.Get → ballot.Codec.Decode → vote

A rejected vote never reaches the store. The store's unique key on the
vote uuid is the only guard against resubmission.
*/
package vote
