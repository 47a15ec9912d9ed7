package httpapi

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"holdco-backend/internal/forms"
	"holdco-backend/internal/model"
	"holdco-backend/internal/rejections"
)

// maxFormBody bounds lead form payloads; property images are handled
// separately with a larger multipart limit.
const maxFormBody = 1 << 20

// decodeForm reads the body, unmarshals into dst and runs tag validation.
// On failure it answers the request itself (400/422), logs the rejection,
// and returns nil. The caller performs no side effects, so an invalid
// submit never reaches the database, the queue or the mailer.
func (s *Server) decodeForm(w http.ResponseWriter, r *http.Request, formKind string, dst any) []byte {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxFormBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read body")
		return nil
	}
	if err := json.Unmarshal(body, dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return nil
	}
	if errs := forms.ValidateStruct(dst); errs != nil {
		if err := rejections.WriteRejection(formKind, r.RemoteAddr, errs); err != nil {
			log.Printf("rejections: write error: %v", err)
		}
		writeFieldErrors(w, errs)
		return nil
	}
	return body
}

// acceptLead is the single accept path for every form: duplicate check,
// one database row, one leads.accepted event. Archive and notification
// happen asynchronously in the consumer.
func (s *Server) acceptLead(w http.ResponseWriter, r *http.Request, kind model.LeadKind, name, email string, payload []byte) {
	submit := func() (any, error) {
		lead, err := s.Leads.Insert(r.Context(), kind, name, email, payload)
		if err != nil {
			return nil, err
		}
		evt := model.LeadAccepted{
			LeadID:    lead.ID,
			Kind:      kind,
			Name:      name,
			Email:     email,
			Payload:   payload,
			Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		}
		if err := s.Publish(r.Context(), evt); err != nil {
			// The row is committed; the event is best-effort.
			log.Printf("leads: publish error for %s: %v", lead.ID, err)
		}
		return lead, nil
	}

	var (
		res   any
		fresh = true
		err   error
	)
	if s.Dedupe != nil {
		res, fresh, err = s.Dedupe.Do(r.Context(), forms.Fingerprint(string(kind), payload), submit)
	} else {
		res, err = submit()
	}
	if err != nil {
		log.Printf("leads: accept error (%s): %v", kind, err)
		writeError(w, http.StatusInternalServerError, "something went wrong, try again")
		return
	}
	if !fresh {
		writeError(w, http.StatusConflict, "duplicate submission")
		return
	}

	lead := res.(*model.Lead)
	writeJSON(w, http.StatusCreated, map[string]string{"status": "received", "id": lead.ID})
}

func (s *Server) contactHandler(w http.ResponseWriter, r *http.Request) {
	var msg model.ContactMessage
	payload := s.decodeForm(w, r, string(model.LeadContact), &msg)
	if payload == nil {
		return
	}
	s.acceptLead(w, r, model.LeadContact, msg.Name, msg.Email, payload)
}

func (s *Server) consultationHandler(w http.ResponseWriter, r *http.Request) {
	var req model.ConsultationRequest
	payload := s.decodeForm(w, r, string(model.LeadConsultation), &req)
	if payload == nil {
		return
	}
	s.acceptLead(w, r, model.LeadConsultation, req.Name, req.Email, payload)
}

func (s *Server) offerHandler(w http.ResponseWriter, r *http.Request) {
	var offer model.PropertyOffer
	payload := s.decodeForm(w, r, string(model.LeadOffer), &offer)
	if payload == nil {
		return
	}

	// The offer must reference a property in the current catalog.
	if _, ok := s.Snap.Get(model.KindEstates, offer.PropertyID); !ok {
		writeError(w, http.StatusNotFound, "property not found")
		return
	}
	s.acceptLead(w, r, model.LeadOffer, offer.Name, offer.Email, payload)
}

func (s *Server) enrollmentHandler(w http.ResponseWriter, r *http.Request) {
	var enr model.Enrollment
	payload := s.decodeForm(w, r, string(model.LeadEnrollment), &enr)
	if payload == nil {
		return
	}
	if _, ok := s.Snap.Get(model.KindResearch, enr.CourseID); !ok {
		writeError(w, http.StatusNotFound, "course not found")
		return
	}
	s.acceptLead(w, r, model.LeadEnrollment, enr.Name, enr.Email, payload)
}

// propertySubmitHandler accepts the authenticated multipart listing form
// and forwards it upstream (image included). Exactly one outbound call.
func (s *Server) propertySubmitHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(16 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	sub := model.PropertySubmission{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
		Location:    r.FormValue("location"),
	}
	if v, err := strconv.ParseFloat(r.FormValue("price"), 64); err == nil {
		sub.Price = v
	}
	if errs := forms.ValidateStruct(sub); errs != nil {
		if err := rejections.WriteRejection("property_submission", r.RemoteAddr, errs); err != nil {
			log.Printf("rejections: write error: %v", err)
		}
		writeFieldErrors(w, errs)
		return
	}

	file, hdr, err := r.FormFile("image")
	if err != nil {
		writeFieldErrors(w, []forms.FieldError{{Field: "image", Reason: "this field is required"}})
		return
	}
	defer file.Close()

	if err := s.Upstream.SubmitProperty(r.Context(), sub, hdr.Filename, file); err != nil {
		log.Printf("property submit upstream error: %v", err)
		writeError(w, http.StatusBadGateway, "something went wrong, try again")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "submitted"})
}
