// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.pub

package access

// MediaRead is public: media assets are readable by anyone.
func MediaRead(Identity) Decision {
	return Allow()
}

// MediaCreate permits any authenticated requester.
func MediaCreate(requester Identity) Decision {
	return authenticatedOnly(requester)
}

// MediaUpdate permits any authenticated requester.
func MediaUpdate(requester Identity) Decision {
	return authenticatedOnly(requester)
}

// MediaDelete permits any authenticated requester.
func MediaDelete(requester Identity) Decision {
	return authenticatedOnly(requester)
}
