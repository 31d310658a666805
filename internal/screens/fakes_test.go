package screens

import (
	"bytes"
	"context"
	"time"

	"github.com/voisa/voictl/internal/api"
)

// testUI captures screen output for assertions.
func testUI() (*UI, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &UI{Out: out, Err: errOut}, out, errOut
}

// fakeSMSAPI counts send calls and exposes error injection; the fake style
// mirrors the in-memory stores used across the service tests.
type fakeSMSAPI struct {
	numbers []api.PhoneNumber
	history []api.SMSRecord

	sendCalls []sendCall
	sendErr   error
	histErr   error
}

type sendCall struct {
	fromNumberID string
	toNumbers    []string
	message      string
}

func (f *fakeSMSAPI) ActivePhoneNumbers(ctx context.Context) ([]api.PhoneNumber, error) {
	return f.numbers, nil
}

func (f *fakeSMSAPI) SMSHistory(ctx context.Context) ([]api.SMSRecord, error) {
	if f.histErr != nil {
		return nil, f.histErr
	}
	return f.history, nil
}

func (f *fakeSMSAPI) SentSMSHistory(ctx context.Context) ([]api.SMSRecord, error) {
	return f.SMSHistory(ctx)
}

func (f *fakeSMSAPI) ReceivedSMSHistory(ctx context.Context) ([]api.SMSRecord, error) {
	return f.SMSHistory(ctx)
}

func (f *fakeSMSAPI) SMSHistoryByDateRange(ctx context.Context, start, end time.Time) ([]api.SMSRecord, error) {
	return f.SMSHistory(ctx)
}

func (f *fakeSMSAPI) SendSMS(ctx context.Context, fromNumberID string, toNumbers []string, message string) ([]api.SMSRecord, error) {
	f.sendCalls = append(f.sendCalls, sendCall{
		fromNumberID: fromNumberID,
		toNumbers:    append([]string(nil), toNumbers...),
		message:      message,
	})
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	return nil, nil
}

type fakeContactsAPI struct {
	contacts []api.Contact

	listErr   error
	deleteErr error

	listCalls   int
	deleteCalls []string
}

func (f *fakeContactsAPI) Contacts(ctx context.Context) ([]api.Contact, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]api.Contact(nil), f.contacts...), nil
}

func (f *fakeContactsAPI) AddContact(ctx context.Context, name, number string) (api.Contact, error) {
	c := api.Contact{ID: "new", Name: name, Number: number}
	f.contacts = append(f.contacts, c)
	return c, nil
}

func (f *fakeContactsAPI) UpdateContact(ctx context.Context, contactID, name, number string) (api.Contact, error) {
	return api.Contact{ID: contactID, Name: name, Number: number}, nil
}

func (f *fakeContactsAPI) DeleteContact(ctx context.Context, contactID string) error {
	f.deleteCalls = append(f.deleteCalls, contactID)
	return f.deleteErr
}

type fakeNumbersAPI struct {
	owned      []api.PhoneNumber
	active     []api.PhoneNumber
	candidates []api.AvailableNumber

	searchErr   error
	purchaseErr error

	searches    []numberSearch
	ownedCalls  int
	activeCalls int
	purchases   []string
}

type numberSearch struct {
	country  string
	areaCode string
	pattern  string
	limit    int
}

func (f *fakeNumbersAPI) PhoneNumbers(ctx context.Context) ([]api.PhoneNumber, error) {
	f.ownedCalls++
	return f.owned, nil
}

func (f *fakeNumbersAPI) ActivePhoneNumbers(ctx context.Context) ([]api.PhoneNumber, error) {
	f.activeCalls++
	return f.active, nil
}

func (f *fakeNumbersAPI) PurchaseNumber(ctx context.Context, availableNumberID string) (api.PhoneNumber, error) {
	f.purchases = append(f.purchases, availableNumberID)
	if f.purchaseErr != nil {
		return api.PhoneNumber{}, f.purchaseErr
	}
	return api.PhoneNumber{ID: availableNumberID, Number: "+15550100", Status: "ACTIVE"}, nil
}

func (f *fakeNumbersAPI) RenewNumber(ctx context.Context, phoneNumberID string) (api.PhoneNumber, error) {
	return api.PhoneNumber{ID: phoneNumberID}, nil
}

func (f *fakeNumbersAPI) DeactivateNumber(ctx context.Context, phoneNumberID string) (api.PhoneNumber, error) {
	return api.PhoneNumber{ID: phoneNumberID, Status: "INACTIVE"}, nil
}

func (f *fakeNumbersAPI) SearchAvailableNumbers(ctx context.Context, country, areaCode string, limit int) ([]api.AvailableNumber, error) {
	f.searches = append(f.searches, numberSearch{country: country, areaCode: areaCode, limit: limit})
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.candidates, nil
}

func (f *fakeNumbersAPI) AvailableNumbersByCountry(ctx context.Context, country string) ([]api.AvailableNumber, error) {
	f.searches = append(f.searches, numberSearch{country: country})
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.candidates, nil
}

func (f *fakeNumbersAPI) SearchAvailableNumbersByPattern(ctx context.Context, country, pattern string) ([]api.AvailableNumber, error) {
	f.searches = append(f.searches, numberSearch{country: country, pattern: pattern})
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.candidates, nil
}

type fakeCreditsAPI struct {
	balance float64
	history []api.CreditTransaction

	purchases []string
	purchErr  error
}

func (f *fakeCreditsAPI) CreditBalance(ctx context.Context) (float64, error) {
	return f.balance, nil
}

func (f *fakeCreditsAPI) CreditHistory(ctx context.Context) ([]api.CreditTransaction, error) {
	return f.history, nil
}

func (f *fakeCreditsAPI) PurchaseCredits(ctx context.Context, packageID string, amount int) (api.CreditTransaction, error) {
	f.purchases = append(f.purchases, packageID)
	if f.purchErr != nil {
		return api.CreditTransaction{}, f.purchErr
	}
	return api.CreditTransaction{ID: "tx-1", TransactionType: api.TransactionPurchase}, nil
}

type fakeCallsAPI struct {
	history []api.CallRecord

	makeCalls []string
	makeErr   error
}

func (f *fakeCallsAPI) ActivePhoneNumbers(ctx context.Context) ([]api.PhoneNumber, error) {
	return nil, nil
}

func (f *fakeCallsAPI) Contacts(ctx context.Context) ([]api.Contact, error) {
	return nil, nil
}

func (f *fakeCallsAPI) MakeCall(ctx context.Context, fromNumberID, toNumber string) (api.CallRecord, error) {
	f.makeCalls = append(f.makeCalls, fromNumberID+"->"+toNumber)
	if f.makeErr != nil {
		return api.CallRecord{}, f.makeErr
	}
	return api.CallRecord{ID: "call-1", FromNumber: fromNumberID, ToNumber: toNumber}, nil
}

func (f *fakeCallsAPI) CallHistory(ctx context.Context) ([]api.CallRecord, error) {
	return f.history, nil
}

func (f *fakeCallsAPI) OutgoingCallHistory(ctx context.Context) ([]api.CallRecord, error) {
	return f.history, nil
}

func (f *fakeCallsAPI) IncomingCallHistory(ctx context.Context) ([]api.CallRecord, error) {
	return f.history, nil
}

func (f *fakeCallsAPI) CallHistoryByDateRange(ctx context.Context, start, end time.Time) ([]api.CallRecord, error) {
	return f.history, nil
}

type fakeDashboardAPI struct {
	balance float64
	numbers []api.PhoneNumber
	calls   []api.CallRecord
	sms     []api.SMSRecord
	credits []api.CreditTransaction

	balanceErr error
}

func (f *fakeDashboardAPI) CreditBalance(ctx context.Context) (float64, error) {
	if f.balanceErr != nil {
		return 0, f.balanceErr
	}
	return f.balance, nil
}

func (f *fakeDashboardAPI) ActivePhoneNumbers(ctx context.Context) ([]api.PhoneNumber, error) {
	return f.numbers, nil
}

func (f *fakeDashboardAPI) CallHistory(ctx context.Context) ([]api.CallRecord, error) {
	return f.calls, nil
}

func (f *fakeDashboardAPI) SMSHistory(ctx context.Context) ([]api.SMSRecord, error) {
	return f.sms, nil
}

func (f *fakeDashboardAPI) CreditHistory(ctx context.Context) ([]api.CreditTransaction, error) {
	return f.credits, nil
}
