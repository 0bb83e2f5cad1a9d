package auth

// Profile is the user record fetched at login or PIN validation. It is
// persisted wholesale as JSON under the user-data key; partial merges only
// happen through Manager.UpdateUserData.
type Profile struct {
	Name            string `json:"name"`
	Mobile          string `json:"mobile"`
	City            string `json:"city"`
	State           string `json:"state"`
	UserType        string `json:"user_type"`
	VerifiedStatus  string `json:"verified_status"`
	PIN             string `json:"pin"` // display reference, not a secret
	ReferralCode    string `json:"referral_code"`
	ProfilePhotoURL string `json:"profile_photo_url"`
}
