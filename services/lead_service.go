package services

import (
	"context"
	"strings"

	"github.com/IlyaBatulin/lesopilka/config"
	"github.com/IlyaBatulin/lesopilka/models"
	"github.com/sirupsen/logrus"
)

// SubmitLead forwards a contact form to the shop manager. Leads are not
// stored; without mail configured the request is only logged.
func SubmitLead(ctx context.Context, lead models.LeadRequest) error {
	lead.Name = strings.TrimSpace(lead.Name)
	lead.Phone = strings.TrimSpace(lead.Phone)

	log := logrus.WithFields(logrus.Fields{"component": "lead", "name": lead.Name})
	client := GetResendClient()
	if !client.Enabled() {
		log.Warn("mail disabled, lead only logged")
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, config.App.Catalog.RequestTimeout)
	defer cancel()
	if err := client.SendLeadNotification(ctx, lead); err != nil {
		log.WithError(err).Error("failed to forward lead")
		return err
	}
	return nil
}
