package leads

import (
	"context"
	"encoding/json"
	"log"

	"holdco-backend/internal/kstream"
	"holdco-backend/internal/mail"
	"holdco-backend/internal/model"
)

// ConsumeAccepted reads leads.accepted and performs the asynchronous side
// effects of a submission: JSONL archive and the internal notification
// email. The database row was already written synchronously by the
// handler, so a crash here never loses the lead.
func ConsumeAccepted(ctx context.Context, mailer *mail.Client) error {
	reader := kstream.KafkaReader(kstream.TopicLeadsAccepted, "leads-group")
	defer reader.Close()

	log.Println("Leads: consuming from", kstream.TopicLeadsAccepted)

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		var evt model.LeadAccepted
		if err := json.Unmarshal(msg.Value, &evt); err != nil {
			log.Printf("Leads: failed to unmarshal: %v", err)
			continue
		}

		if err := ArchiveLead(evt); err != nil {
			log.Printf("Leads: archive error for %s: %v", evt.LeadID, err)
		}

		if mailer != nil {
			if err := mailer.SendLeadNotification(ctx, evt); err != nil {
				log.Printf("Leads: notification error for %s: %v", evt.LeadID, err)
			}
		}
	}
}
