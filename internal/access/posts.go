// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.pub

package access

import "github.com/inkwell-cms/inkwell/internal/docstore"

// PostsRead grants full visibility (including drafts) to any authenticated
// requester; anonymous requesters see only published posts.
func PostsRead(requester Identity) Decision {
	if requester.IsAuthenticated() {
		return Allow()
	}
	return AllowWhere(docstore.Eq("status", "published"))
}

// PostsCreate permits any authenticated requester.
func PostsCreate(requester Identity) Decision {
	return authenticatedOnly(requester)
}

// PostsUpdate permits any authenticated requester. There is deliberately no
// ownership check: any signed-in user may modify any post.
func PostsUpdate(requester Identity) Decision {
	return authenticatedOnly(requester)
}

// PostsDelete permits any authenticated requester.
func PostsDelete(requester Identity) Decision {
	return authenticatedOnly(requester)
}

// authenticatedOnly is the shared gate for mutation verbs.
func authenticatedOnly(requester Identity) Decision {
	if requester.IsAuthenticated() {
		return Allow()
	}
	return Deny()
}
