package account

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/Nexus/internal/logger"
	"github.com/mamadbah2/Nexus/internal/notify"
	"github.com/mamadbah2/Nexus/internal/order"
	"github.com/mamadbah2/Nexus/internal/session"
	"github.com/mamadbah2/Nexus/internal/user"
)

const maxAvatarSize = 5 * 1024 * 1024

var (
	ErrNameTooShort     = errors.New("name must be at least 2 characters")
	ErrPasswordTooShort = errors.New("password must be at least 3 characters")
	ErrNotAnImage       = errors.New("avatar must be an image file")
	ErrAvatarTooLarge   = errors.New("avatar must be smaller than 5MB")
	ErrProfileNotLoaded = errors.New("profile not loaded")
)

// View is the account screen: profile display/edit, avatar upload and the
// pre-aggregated purchase statistics.
type View struct {
	users    user.Client
	orders   order.Client
	sess     *session.Session
	notifier notify.Notifier

	profile    *user.Profile
	statistics *order.UserStatistics
}

func NewView(users user.Client, orders order.Client, sess *session.Session, notifier notify.Notifier) *View {
	return &View{
		users:    users,
		orders:   orders,
		sess:     sess,
		notifier: notifier,
	}
}

// Load fetches the profile; statistics load best-effort and stay nil on
// failure, without bothering the user.
func (v *View) Load(ctx context.Context) error {
	v.loadStatistics(ctx)

	profile, err := v.users.Get(ctx, v.sess.UserID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to load profile", zap.Error(err))
		v.notifier.Error("Error", "Failed to load profile")
		return err
	}

	v.profile = profile
	return nil
}

func (v *View) Profile() *user.Profile {
	return v.profile
}

func (v *View) Statistics() *order.UserStatistics {
	return v.statistics
}

// UpdateProfile changes the display name and, when non-empty, the password.
func (v *View) UpdateProfile(ctx context.Context, name, password string) error {
	if v.profile == nil {
		return ErrProfileNotLoaded
	}
	if len(strings.TrimSpace(name)) < 2 {
		return ErrNameTooShort
	}
	if password != "" && len(password) < 3 {
		return ErrPasswordTooShort
	}

	updated, err := v.users.Update(ctx, v.profile.ID, user.UpdateRequest{Name: name, Password: password})
	if err != nil {
		logger.FromCtx(ctx).Error("failed to update profile", zap.Error(err))
		v.notifier.Error("Error", "Failed to update profile")
		return err
	}

	v.profile = updated
	v.notifier.Success("Success", "Profile updated")
	return nil
}

// UploadAvatar validates and uploads a new avatar image.
func (v *View) UploadAvatar(ctx context.Context, fileName, mimeType string, data []byte) error {
	if v.profile == nil {
		return ErrProfileNotLoaded
	}
	if !strings.HasPrefix(mimeType, "image/") {
		v.notifier.Error("Error", "Please select a valid image file")
		return ErrNotAnImage
	}
	if len(data) > maxAvatarSize {
		v.notifier.Error("Error", "File size must be less than 5MB")
		return ErrAvatarTooLarge
	}

	updated, err := v.users.UploadAvatar(ctx, v.profile.ID, fileName, mimeType, data)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to upload avatar", zap.Error(err))
		v.notifier.Error("Error", "Failed to update avatar")
		return err
	}

	v.profile = updated
	v.notifier.Success("Success", "Avatar updated")
	return nil
}

func (v *View) loadStatistics(ctx context.Context) {
	stats, err := v.orders.Statistics(ctx, v.sess.UserID)
	if err != nil {
		logger.FromCtx(ctx).Debug("failed to load statistics", zap.Error(err))
		return
	}
	v.statistics = stats
}
