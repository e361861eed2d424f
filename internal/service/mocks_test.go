package service

import (
	"time"

	"github.com/google/uuid"

	"complaint-service/internal/model"
)

// In-memory stores for the service tests. Finders return copies so a test
// can mutate the stored record between a service's read and its conditional
// write, the way a concurrent request would.

type fakeComplaintStore struct {
	complaints map[uuid.UUID]*model.Complaint
	createErr  error

	// beforeUpdate, when set, runs just before a conditional write checks
	// the stored status. It stands in for a competing request.
	beforeUpdate func()
}

func newFakeComplaintStore() *fakeComplaintStore {
	return &fakeComplaintStore{complaints: map[uuid.UUID]*model.Complaint{}}
}

func (f *fakeComplaintStore) Create(complaint *model.Complaint) error {
	if f.createErr != nil {
		return f.createErr
	}
	stored := *complaint
	f.complaints[complaint.ID] = &stored
	return nil
}

func (f *fakeComplaintStore) FindByID(id uuid.UUID) (*model.Complaint, error) {
	stored, ok := f.complaints[id]
	if !ok {
		return nil, nil
	}
	copy := *stored
	return &copy, nil
}

func (f *fakeComplaintStore) FindAll() ([]model.Complaint, error) {
	var out []model.Complaint
	for _, c := range f.complaints {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeComplaintStore) FindBySubmitter(userID uuid.UUID) ([]model.Complaint, error) {
	var out []model.Complaint
	for _, c := range f.complaints {
		if c.SubmittedByID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeComplaintStore) FindByAgency(agencyID uuid.UUID) ([]model.Complaint, error) {
	var out []model.Complaint
	for _, c := range f.complaints {
		if c.AssignedToID != nil && *c.AssignedToID == agencyID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeComplaintStore) UpdateContent(id uuid.UUID, req *model.UpdateComplaintRequest) error {
	stored := f.complaints[id]
	if req.Title != nil {
		stored.Title = *req.Title
	}
	if req.Description != nil {
		stored.Description = *req.Description
	}
	if req.CategoryID != nil {
		stored.CategoryID = *req.CategoryID
	}
	if req.Location != nil {
		stored.Location = req.Location
	}
	stored.UpdatedAt = time.Now()
	return nil
}

func (f *fakeComplaintStore) UpdateStatus(id uuid.UUID, from, to model.ComplaintStatus,
	resolutionDate *time.Time, resolutionDetails *string) (bool, error) {

	if f.beforeUpdate != nil {
		f.beforeUpdate()
	}
	stored, ok := f.complaints[id]
	if !ok || stored.Status != from {
		return false, nil
	}
	stored.Status = to
	if resolutionDate != nil {
		stored.ResolutionDate = resolutionDate
		stored.ResolutionDetails = resolutionDetails
	}
	return true, nil
}

func (f *fakeComplaintStore) UpdateAssignment(id uuid.UUID, agencyID uuid.UUID,
	from, to model.ComplaintStatus) (bool, error) {

	stored, ok := f.complaints[id]
	if !ok || stored.Status != from {
		return false, nil
	}
	stored.AssignedToID = &agencyID
	stored.Status = to
	return true, nil
}

type fakeCategoryStore struct {
	categories map[int]*model.Category
	nextID     int
}

func newFakeCategoryStore() *fakeCategoryStore {
	return &fakeCategoryStore{categories: map[int]*model.Category{}, nextID: 1}
}

func (f *fakeCategoryStore) FindByID(id int) (*model.Category, error) {
	stored, ok := f.categories[id]
	if !ok {
		return nil, nil
	}
	copy := *stored
	return &copy, nil
}

func (f *fakeCategoryStore) FindAll() ([]model.Category, error) {
	var out []model.Category
	for _, c := range f.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCategoryStore) Create(category *model.Category) error {
	category.ID = f.nextID
	f.nextID++
	stored := *category
	f.categories[category.ID] = &stored
	return nil
}

type provisionCall struct {
	official *model.User
	agency   *model.Agency
}

type fakeAgencyStore struct {
	agencies     map[uuid.UUID]*model.Agency
	provisioned  []provisionCall
	provisionErr error
}

func newFakeAgencyStore() *fakeAgencyStore {
	return &fakeAgencyStore{agencies: map[uuid.UUID]*model.Agency{}}
}

func (f *fakeAgencyStore) FindByID(id uuid.UUID) (*model.Agency, error) {
	stored, ok := f.agencies[id]
	if !ok {
		return nil, nil
	}
	copy := *stored
	return &copy, nil
}

func (f *fakeAgencyStore) FindByAdministrator(userID uuid.UUID) (*model.Agency, error) {
	for _, a := range f.agencies {
		if a.AdministratorID == userID {
			copy := *a
			return &copy, nil
		}
	}
	return nil, nil
}

func (f *fakeAgencyStore) FindAll() ([]model.Agency, error) {
	var out []model.Agency
	for _, a := range f.agencies {
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeAgencyStore) Provision(official *model.User, agency *model.Agency) error {
	if f.provisionErr != nil {
		return f.provisionErr
	}
	f.provisioned = append(f.provisioned, provisionCall{official: official, agency: agency})
	stored := *agency
	f.agencies[agency.ID] = &stored
	return nil
}

type fakeResponseStore struct {
	responses map[uuid.UUID]*model.Response
}

func newFakeResponseStore() *fakeResponseStore {
	return &fakeResponseStore{responses: map[uuid.UUID]*model.Response{}}
}

func (f *fakeResponseStore) Create(response *model.Response) error {
	stored := *response
	f.responses[response.ID] = &stored
	return nil
}

func (f *fakeResponseStore) FindByID(id uuid.UUID) (*model.Response, error) {
	stored, ok := f.responses[id]
	if !ok {
		return nil, nil
	}
	copy := *stored
	return &copy, nil
}

func (f *fakeResponseStore) FindByComplaint(complaintID uuid.UUID) ([]model.Response, error) {
	var out []model.Response
	for _, r := range f.responses {
		if r.ComplaintID == complaintID {
			out = append(out, *r)
		}
	}
	return out, nil
}

type fakeAttachmentStore struct {
	attachments map[uuid.UUID]*model.Attachment
}

func newFakeAttachmentStore() *fakeAttachmentStore {
	return &fakeAttachmentStore{attachments: map[uuid.UUID]*model.Attachment{}}
}

func (f *fakeAttachmentStore) Create(attachment *model.Attachment) error {
	stored := *attachment
	f.attachments[attachment.ID] = &stored
	return nil
}

func (f *fakeAttachmentStore) FindByID(id uuid.UUID) (*model.Attachment, error) {
	stored, ok := f.attachments[id]
	if !ok {
		return nil, nil
	}
	copy := *stored
	return &copy, nil
}

func (f *fakeAttachmentStore) FindByRelated(relatedType model.RelatedType, relatedID uuid.UUID) ([]model.Attachment, error) {
	var out []model.Attachment
	for _, a := range f.attachments {
		if a.RelatedType == relatedType && a.RelatedID == relatedID {
			out = append(out, *a)
		}
	}
	return out, nil
}

type feedbackKey struct {
	complaintID uuid.UUID
	submitterID uuid.UUID
}

type fakeFeedbackStore struct {
	feedback  map[feedbackKey]*model.Feedback
	createErr error
}

func newFakeFeedbackStore() *fakeFeedbackStore {
	return &fakeFeedbackStore{feedback: map[feedbackKey]*model.Feedback{}}
}

func (f *fakeFeedbackStore) Create(fb *model.Feedback) error {
	if f.createErr != nil {
		return f.createErr
	}
	stored := *fb
	f.feedback[feedbackKey{fb.ComplaintID, fb.SubmittedByID}] = &stored
	return nil
}

func (f *fakeFeedbackStore) Exists(complaintID, submitterID uuid.UUID) (bool, error) {
	_, ok := f.feedback[feedbackKey{complaintID, submitterID}]
	return ok, nil
}

func (f *fakeFeedbackStore) FindByComplaint(complaintID uuid.UUID) ([]model.Feedback, error) {
	var out []model.Feedback
	for _, fb := range f.feedback {
		if fb.ComplaintID == complaintID {
			out = append(out, *fb)
		}
	}
	return out, nil
}

type fakeNotificationStore struct {
	notifications []model.Notification
	createErr     error
}

func (f *fakeNotificationStore) Create(notification *model.Notification) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.notifications = append(f.notifications, *notification)
	return nil
}

func (f *fakeNotificationStore) GetByRecipient(userID uuid.UUID) ([]model.Notification, error) {
	var out []model.Notification
	for _, n := range f.notifications {
		if n.RecipientID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotificationStore) GetUnreadCount(userID uuid.UUID) (int, error) {
	count := 0
	for _, n := range f.notifications {
		if n.RecipientID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationStore) MarkAsRead(id, userID uuid.UUID) error {
	for i := range f.notifications {
		if f.notifications[i].ID == id && f.notifications[i].RecipientID == userID {
			f.notifications[i].IsRead = true
		}
	}
	return nil
}

func (f *fakeNotificationStore) MarkAllAsRead(userID uuid.UUID) error {
	for i := range f.notifications {
		if f.notifications[i].RecipientID == userID {
			f.notifications[i].IsRead = true
		}
	}
	return nil
}

type outboxEntry struct {
	routingKey string
	payload    interface{}
}

type fakeOutboxStore struct {
	entries   []outboxEntry
	createErr error
}

func (f *fakeOutboxStore) Create(routingKey string, payload interface{}) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.entries = append(f.entries, outboxEntry{routingKey: routingKey, payload: payload})
	return nil
}

type fakeUserStore struct {
	users     map[uuid.UUID]*model.User
	createErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[uuid.UUID]*model.User{}}
}

func (f *fakeUserStore) Create(user *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserStore) FindByEmail(email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) FindByID(id uuid.UUID) (*model.User, error) {
	stored, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copy := *stored
	return &copy, nil
}

func (f *fakeUserStore) EmailExists(email string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) UpdateLastLogin(id uuid.UUID, at time.Time) error {
	if u, ok := f.users[id]; ok {
		u.LastLogin = &at
	}
	return nil
}

func (f *fakeUserStore) UpdateStatus(id uuid.UUID, status model.UserStatus) (bool, error) {
	u, ok := f.users[id]
	if !ok {
		return false, nil
	}
	u.Status = status
	return true, nil
}
