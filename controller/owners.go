package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/amolgulati/LeagueLegacy/db"
	"github.com/amolgulati/LeagueLegacy/model"
	"github.com/amolgulati/LeagueLegacy/platforms/sleeper"
	"github.com/amolgulati/LeagueLegacy/platforms/yahoo"
)

const sleeperAvatarURL = "https://sleepercdn.com/avatars/%s"

// resolveSleeperOwner finds the Owner linked to this sleeper identity,
// creating one on first sighting. Display name and avatar are kept
// current on re-import; an existing Name is never overwritten.
func (c *controller) resolveSleeperOwner(ctx context.Context, u sleeper.User) (*model.Owner, error) {
	avatar := ""
	if u.Avatar != "" {
		avatar = fmt.Sprintf(sleeperAvatarURL, u.Avatar)
	}

	owner, err := c.db.GetOwnerByPlatformID(ctx, model.PlatformSleeper, u.ID)
	if err != nil && !errors.Is(err, db.ErrOwnerNotFound) {
		return nil, err
	}
	if err == nil {
		if u.DisplayName != "" {
			owner.DisplayName = u.DisplayName
		}
		if avatar != "" {
			owner.AvatarURL = avatar
		}
		if err := c.db.SaveOwner(ctx, owner); err != nil {
			return nil, err
		}
		return owner, nil
	}

	owner = &model.Owner{
		Name:          u.DisplayName,
		DisplayName:   u.DisplayName,
		AvatarURL:     avatar,
		SleeperUserID: u.ID,
	}
	if err := c.db.SaveOwner(ctx, owner); err != nil {
		return nil, err
	}
	return owner, nil
}

// resolveYahooOwner is the yahoo equivalent, keyed by manager guid.
// Yahoo hides the guid for some privacy settings, so the team key
// stands in as a stable identity when it is missing.
func (c *controller) resolveYahooOwner(ctx context.Context, t yahoo.Team) (*model.Owner, error) {
	externalID := t.ManagerGUID
	if externalID == "" {
		externalID = fmt.Sprintf("team:%s", t.Key)
	}

	name := t.ManagerName
	if name == "" || strings.Contains(name, "hidden") {
		name = t.Name
	}

	owner, err := c.db.GetOwnerByPlatformID(ctx, model.PlatformYahoo, externalID)
	if err != nil && !errors.Is(err, db.ErrOwnerNotFound) {
		return nil, err
	}
	if err == nil {
		if name != "" {
			owner.DisplayName = name
		}
		if t.LogoURL != "" {
			owner.AvatarURL = t.LogoURL
		}
		if err := c.db.SaveOwner(ctx, owner); err != nil {
			return nil, err
		}
		return owner, nil
	}

	owner = &model.Owner{
		Name:        name,
		DisplayName: name,
		AvatarURL:   t.LogoURL,
		YahooUserID: externalID,
	}
	if err := c.db.SaveOwner(ctx, owner); err != nil {
		return nil, err
	}
	return owner, nil
}

func (c *controller) ListOwners(ctx context.Context) ([]model.Owner, error) {
	return c.db.ListOwners(ctx)
}

func (c *controller) GetOwner(ctx context.Context, id int32) (*model.Owner, error) {
	return c.db.GetOwner(ctx, id)
}

func (c *controller) UpdateOwnerName(ctx context.Context, id int32, name string) (*model.Owner, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: owner name must not be empty", ErrValidation)
	}

	owner, err := c.db.GetOwner(ctx, id)
	if err != nil {
		return nil, err
	}
	owner.Name = name
	if err := c.db.SaveOwner(ctx, owner); err != nil {
		return nil, err
	}
	return owner, nil
}

func (c *controller) MergeOwners(ctx context.Context, primaryID, secondaryID int32) (*model.Owner, error) {
	if primaryID == secondaryID {
		return nil, fmt.Errorf("%w: an owner cannot be merged with itself", ErrValidation)
	}
	return c.db.MergeOwners(ctx, primaryID, secondaryID)
}

func (c *controller) MapOwnerPlatform(ctx context.Context, ownerID int32, platform, externalID string) (*model.Owner, error) {
	if !model.IsPlatformSupported(platform) {
		return nil, fmt.Errorf("%w: %s is not a supported platform", ErrValidation, platform)
	}
	if externalID == "" {
		return nil, fmt.Errorf("%w: external id must not be empty", ErrValidation)
	}

	owner, err := c.db.GetOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if err := owner.SetExternalID(platform, externalID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := c.db.SaveOwner(ctx, owner); err != nil {
		return nil, err
	}
	return owner, nil
}

func (c *controller) UnlinkOwnerPlatform(ctx context.Context, ownerID int32, platform string) (*model.Owner, error) {
	if !model.IsPlatformSupported(platform) {
		return nil, fmt.Errorf("%w: %s is not a supported platform", ErrValidation, platform)
	}

	owner, err := c.db.GetOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if err := owner.SetExternalID(platform, ""); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := c.db.SaveOwner(ctx, owner); err != nil {
		return nil, err
	}
	return owner, nil
}
