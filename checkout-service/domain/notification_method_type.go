package domain

import "github.com/pkg/errors"

type NotificationMethodType string

const (
	NotificationMethodTypeEmail    NotificationMethodType = "email"
	NotificationMethodTypeSms      NotificationMethodType = "sms"
	NotificationMethodTypePush     NotificationMethodType = "push"
	NotificationMethodTypeWhatsapp NotificationMethodType = "whatsapp"
)

var allNotificationMethodTypes = map[string]NotificationMethodType{
	NotificationMethodTypeEmail.String():    NotificationMethodTypeEmail,
	NotificationMethodTypeSms.String():      NotificationMethodTypeSms,
	NotificationMethodTypePush.String():     NotificationMethodTypePush,
	NotificationMethodTypeWhatsapp.String(): NotificationMethodTypeWhatsapp,
}

func NewNotificationMethodType(value string) (*NotificationMethodType, error) {
	if value, ok := allNotificationMethodTypes[value]; ok {
		return &value, nil
	}
	return nil, errors.Wrap(ErrUnknownNotificationMethod, value)
}

func (nt NotificationMethodType) String() string {
	return string(nt)
}
