package model

import "fmt"

// Owner is a real person. One Owner row can be linked to a Sleeper identity,
// a Yahoo identity, or both, and persists across seasons and platforms.
type Owner struct {
	ID            int32  `json:"id"`
	Name          string `json:"name"`
	DisplayName   string `json:"display_name"`
	AvatarURL     string `json:"avatar_url"`
	SleeperUserID string `json:"sleeper_user_id"`
	YahooUserID   string `json:"yahoo_user_id"`
}

// ExternalID returns the owner's native id on the given platform, or "".
func (o *Owner) ExternalID(platform string) string {
	switch platform {
	case PlatformSleeper:
		return o.SleeperUserID
	case PlatformYahoo:
		return o.YahooUserID
	}
	return ""
}

// SetExternalID sets the owner's native id for the given platform.
func (o *Owner) SetExternalID(platform, id string) error {
	switch platform {
	case PlatformSleeper:
		o.SleeperUserID = id
	case PlatformYahoo:
		o.YahooUserID = id
	default:
		return fmt.Errorf("%s is not a supported platform", platform)
	}
	return nil
}
