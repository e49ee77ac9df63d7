package bhttp

import (
	"github.com/shapestone/shape-bhttp/internal/varint"
	"github.com/shapestone/shape-bhttp/internal/wire"
)

const (
	minInformativeStatus = 100
	maxInformativeStatus = 199
	minFinalStatus       = 200
	maxFinalStatus       = 599
)

func isInformativeStatus(code uint64) bool {
	return code >= minInformativeStatus && code <= maxInformativeStatus
}

func isFinalStatus(code uint64) bool {
	return code >= minFinalStatus && code <= maxFinalStatus
}

// ControlData is the start-line equivalent of a message: RequestControlData
// for requests, ResponseControlData for responses.
type ControlData interface {
	// FramingIndicator returns the known-length framing this control data belongs to.
	FramingIndicator() FramingIndicator
	// AppendBinary appends the wire encoding of the control data to b.
	AppendBinary(b []byte) ([]byte, error)
	// Equal reports whether other is the same kind with the same contents.
	Equal(other ControlData) bool

	controlData()
}

// RequestControlData holds the request pseudo-header values.
// Authority may be empty; no field is validated.
type RequestControlData struct {
	Method    string
	Scheme    string
	Authority string
	Path      string
}

func (RequestControlData) controlData() {}

// FramingIndicator returns KnownLengthRequest.
func (RequestControlData) FramingIndicator() FramingIndicator { return KnownLengthRequest }

// AppendBinary appends method, scheme, authority and path as length-prefixed strings.
func (c RequestControlData) AppendBinary(b []byte) ([]byte, error) {
	b = appendString(b, c.Method)
	b = appendString(b, c.Scheme)
	b = appendString(b, c.Authority)
	b = appendString(b, c.Path)
	return b, nil
}

// Equal reports whether other is a RequestControlData with the same values.
func (c RequestControlData) Equal(other ControlData) bool {
	o, ok := other.(RequestControlData)
	return ok && c == o
}

func readRequestControlData(r *wire.Reader) (RequestControlData, error) {
	var c RequestControlData
	targets := []struct {
		name string
		dst  *string
	}{
		{"method", &c.Method},
		{"scheme", &c.Scheme},
		{"authority", &c.Authority},
		{"path", &c.Path},
	}
	for _, t := range targets {
		s, err := readInterned(r, requestTokens)
		if err != nil {
			return RequestControlData{}, truncatedError(t.name, err)
		}
		*t.dst = s
	}
	return c, nil
}

// InformativeResponse is an interim (1xx) response carried ahead of the
// final response status.
type InformativeResponse struct {
	statusCode int
	fields     Fields
}

// NewInformativeResponse returns an informative response. The status code
// must be in [100, 199].
func NewInformativeResponse(statusCode int, fields Fields) (InformativeResponse, error) {
	if statusCode < minInformativeStatus || statusCode > maxInformativeStatus {
		return InformativeResponse{}, informativeStatusError(statusCode)
	}
	return InformativeResponse{statusCode: statusCode, fields: fields}, nil
}

// StatusCode returns the 1xx status code.
func (ir InformativeResponse) StatusCode() int { return ir.statusCode }

// Fields returns the header fields of the informative response.
func (ir InformativeResponse) Fields() Fields { return ir.fields }

// Equal reports whether both responses have the same status code and fields.
func (ir InformativeResponse) Equal(other InformativeResponse) bool {
	return ir.statusCode == other.statusCode && ir.fields.Equal(other.fields)
}

func (ir InformativeResponse) appendBinary(b []byte) ([]byte, error) {
	b, _ = varint.Append(b, uint64(ir.statusCode))
	return ir.fields.AppendBinary(b)
}

// InformativeResponseBuilder accumulates an informative response.
type InformativeResponseBuilder struct {
	statusCode int
	fields     FieldsBuilder
}

// NewInformativeResponseBuilder returns an empty builder.
func NewInformativeResponseBuilder() *InformativeResponseBuilder {
	return &InformativeResponseBuilder{}
}

// SetStatusCode sets the 1xx status code.
func (b *InformativeResponseBuilder) SetStatusCode(code int) *InformativeResponseBuilder {
	b.statusCode = code
	return b
}

// AppendField adds a header field.
func (b *InformativeResponseBuilder) AppendField(name, value string) *InformativeResponseBuilder {
	b.fields.Append(name, value)
	return b
}

// Build validates the status code and returns the informative response.
func (b *InformativeResponseBuilder) Build() (InformativeResponse, error) {
	return NewInformativeResponse(b.statusCode, b.fields.Build())
}

// ResponseControlData holds zero or more informative responses followed by
// the final status code.
type ResponseControlData struct {
	informative []InformativeResponse
	finalStatus int
}

func (ResponseControlData) controlData() {}

// FramingIndicator returns KnownLengthResponse.
func (ResponseControlData) FramingIndicator() FramingIndicator { return KnownLengthResponse }

// FinalStatusCode returns the final status code.
func (c ResponseControlData) FinalStatusCode() int { return c.finalStatus }

// InformativeResponses returns a copy of the informative responses in order.
func (c ResponseControlData) InformativeResponses() []InformativeResponse {
	if len(c.informative) == 0 {
		return nil
	}
	out := make([]InformativeResponse, len(c.informative))
	copy(out, c.informative)
	return out
}

// AppendBinary appends each informative response (status code and field
// section) followed by the final status code.
func (c ResponseControlData) AppendBinary(b []byte) ([]byte, error) {
	var err error
	for _, ir := range c.informative {
		if b, err = ir.appendBinary(b); err != nil {
			return nil, err
		}
	}
	return varint.Append(b, uint64(c.finalStatus))
}

// Equal reports whether other is a ResponseControlData with the same final
// status and the same informative responses in the same order.
func (c ResponseControlData) Equal(other ControlData) bool {
	o, ok := other.(ResponseControlData)
	if !ok || c.finalStatus != o.finalStatus || len(c.informative) != len(o.informative) {
		return false
	}
	for i := range c.informative {
		if !c.informative[i].Equal(o.informative[i]) {
			return false
		}
	}
	return true
}

type responseState int

const (
	readingInformative responseState = iota
	done
)

// readResponseControlData reads status codes until one falls outside the
// informative range. That code is the final status.
func readResponseControlData(r *wire.Reader) (ResponseControlData, error) {
	var c ResponseControlData
	for state := readingInformative; state != done; {
		offset := r.Offset()
		code, err := r.ReadVarint()
		if err != nil {
			return ResponseControlData{}, truncatedError("status code", err)
		}

		if isInformativeStatus(code) {
			fields, err := readFieldSection(r)
			if err != nil {
				return ResponseControlData{}, err
			}
			c.informative = append(c.informative, InformativeResponse{statusCode: int(code), fields: fields})
			continue
		}

		if !isFinalStatus(code) {
			return ResponseControlData{}, newDecodeError(offset, ErrInvalidStatusCode,
				"final status code %d not in [%d, %d]", code, minFinalStatus, maxFinalStatus)
		}
		c.finalStatus = int(code)
		state = done
	}
	return c, nil
}

// ResponseControlDataBuilder accumulates response control data.
type ResponseControlDataBuilder struct {
	informative []InformativeResponse
	finalStatus int
}

// NewResponseControlDataBuilder returns an empty builder.
func NewResponseControlDataBuilder() *ResponseControlDataBuilder {
	return &ResponseControlDataBuilder{}
}

// AddInformativeResponse appends an informative response.
func (b *ResponseControlDataBuilder) AddInformativeResponse(ir InformativeResponse) *ResponseControlDataBuilder {
	b.informative = append(b.informative, ir)
	return b
}

// SetFinalStatusCode sets the final status code, which Build checks
// against [200, 599].
func (b *ResponseControlDataBuilder) SetFinalStatusCode(code int) *ResponseControlDataBuilder {
	b.finalStatus = code
	return b
}

// Build validates all status codes and returns the control data. The final
// status code must be in [200, 599] and every informative status code in
// [100, 199]; anything else fails with ErrInvalidStatusCode.
func (b *ResponseControlDataBuilder) Build() (ResponseControlData, error) {
	if b.finalStatus < minFinalStatus || b.finalStatus > maxFinalStatus {
		return ResponseControlData{}, finalStatusError(b.finalStatus)
	}
	for _, ir := range b.informative {
		// Zero-value InformativeResponse bypasses NewInformativeResponse.
		if ir.statusCode < minInformativeStatus || ir.statusCode > maxInformativeStatus {
			return ResponseControlData{}, informativeStatusError(ir.statusCode)
		}
	}
	var informative []InformativeResponse
	if len(b.informative) > 0 {
		informative = make([]InformativeResponse, len(b.informative))
		copy(informative, b.informative)
	}
	return ResponseControlData{informative: informative, finalStatus: b.finalStatus}, nil
}
