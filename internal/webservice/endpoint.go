package webservice

import (
	"catalogue/internal/course"
	_ "embed"
	"encoding/xml"
	"errors"
	"fmt"
	"github.com/gin-gonic/gin"
	"github.com/juju/loggo/v2"
	"io"
	"net/http"
)

var logger = loggo.GetLogger("catalogue.webservice")

//go:embed course.xsd
var courseSchema []byte

const (
	faultClient = "soap:Client"
	faultServer = "soap:Server"
)

var (
	// errMalformed marks requests that are not well-formed SOAP messages.
	errMalformed = errors.New("malformed request")
	errForbidden = errors.New("access denied")
)

// Authorizer reports whether the caller behind c may run administrative
// operations.
type Authorizer func(c *gin.Context) bool

// Endpoint answers SOAP 1.1 calls on the course service.
type Endpoint struct {
	service course.Service
	admin   Authorizer
}

// NewEndpoint builds an endpoint that consults admin before wiping the
// catalogue. A nil admin refuses every caller.
func NewEndpoint(service course.Service, admin Authorizer) *Endpoint {
	return &Endpoint{service: service, admin: admin}
}

func (e *Endpoint) RegisterRoutes(router gin.IRouter) {
	router.POST("/ws", e.Handle)
}

// RegisterDocs serves the XML schema of the messages.
func (e *Endpoint) RegisterDocs(router gin.IRouter) {
	router.GET("/ws/course.xsd", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/xml; charset=utf-8", courseSchema)
	})
}

func (e *Endpoint) Handle(c *gin.Context) {
	payload, err := e.dispatch(c)
	if err != nil {
		e.writeFault(c, err)
		return
	}
	e.write(c, http.StatusOK, responseBody{Payload: payload})
}

func (e *Endpoint) dispatch(c *gin.Context) (interface{}, error) {
	ctx := c.Request.Context()
	dec := xml.NewDecoder(c.Request.Body)
	start, err := payloadElement(dec)
	if err != nil {
		return nil, err
	}
	if start.Name.Space != Namespace {
		return nil, fmt.Errorf("%w: unexpected namespace %q", errMalformed, start.Name.Space)
	}

	switch start.Name.Local {
	case "getAllCoursesRequest":
		courses, err := e.service.GetAllCourses(ctx)
		if err != nil {
			return nil, err
		}
		return &GetAllCoursesResponse{Courses: toCourseXmlList(courses)}, nil

	case "getCourseByIdRequest":
		var req GetCourseByIdRequest
		if err := decodePayload(dec, &start, &req); err != nil {
			return nil, err
		}
		found, err := e.service.GetCourseByID(ctx, req.CourseID)
		if err != nil {
			return nil, err
		}
		return &GetCourseByIdResponse{Course: toCourseXml(found)}, nil

	case "searchCoursesRequest":
		var req SearchCoursesRequest
		if err := decodePayload(dec, &start, &req); err != nil {
			return nil, err
		}
		courses, err := e.service.SearchSimilarCourses(ctx, req.Name, req.Category, req.Rating)
		if err != nil {
			return nil, err
		}
		return &SearchCoursesResponse{Courses: toCourseXmlList(courses)}, nil

	case "createCourseRequest":
		var req CreateCourseRequest
		if err := decodePayload(dec, &start, &req); err != nil {
			return nil, err
		}
		created, err := e.service.CreateCourse(ctx, req.Course.toCourse())
		if err != nil {
			return nil, err
		}
		return &CreateCourseResponse{Course: toCourseXml(created)}, nil

	case "updateCourseRequest":
		var req UpdateCourseRequest
		if err := decodePayload(dec, &start, &req); err != nil {
			return nil, err
		}
		updated, err := e.service.UpdateCourse(ctx, req.CourseID, req.Course.toCourse())
		if err != nil {
			return nil, err
		}
		return &UpdateCourseResponse{Course: toCourseXml(updated)}, nil

	case "deleteCourseRequest":
		var req DeleteCourseRequest
		if err := decodePayload(dec, &start, &req); err != nil {
			return nil, err
		}
		if err := e.service.DeleteCourseByID(ctx, req.CourseID); err != nil {
			return nil, err
		}
		return &DeleteCourseResponse{CourseID: req.CourseID}, nil

	case "deleteAllCoursesRequest":
		if e.admin == nil || !e.admin(c) {
			return nil, errForbidden
		}
		if err := e.service.DeleteCourses(ctx); err != nil {
			return nil, err
		}
		return &DeleteAllCoursesResponse{}, nil
	}
	return nil, fmt.Errorf("%w: unknown operation %q", errMalformed, start.Name.Local)
}

// payloadElement advances dec to the first element inside the SOAP body,
// skipping any header.
func payloadElement(dec *xml.Decoder) (xml.StartElement, error) {
	start, err := nextElement(dec)
	if err != nil {
		return start, err
	}
	if start.Name != (xml.Name{Space: soapNamespace, Local: "Envelope"}) {
		return start, fmt.Errorf("%w: expected a SOAP envelope, got %q", errMalformed, start.Name.Local)
	}
	for {
		start, err = nextElement(dec)
		if err != nil {
			return start, err
		}
		if start.Name == (xml.Name{Space: soapNamespace, Local: "Body"}) {
			return nextElement(dec)
		}
		if err := dec.Skip(); err != nil {
			return start, fmt.Errorf("%w: %v", errMalformed, err)
		}
	}
}

func nextElement(dec *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return xml.StartElement{}, fmt.Errorf("%w: unexpected end of message", errMalformed)
		}
		if err != nil {
			return xml.StartElement{}, fmt.Errorf("%w: %v", errMalformed, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return t, nil
		case xml.EndElement:
			return xml.StartElement{}, fmt.Errorf("%w: empty %s", errMalformed, t.Name.Local)
		}
	}
}

func decodePayload(dec *xml.Decoder, start *xml.StartElement, v interface{}) error {
	if err := dec.DecodeElement(v, start); err != nil {
		return fmt.Errorf("%w: %v", errMalformed, err)
	}
	return nil
}

func (e *Endpoint) writeFault(c *gin.Context, err error) {
	var validationErr *course.ValidationError
	fault := &Fault{Code: faultClient, String: err.Error()}
	switch {
	case course.IsNotFound(err):
		fault.Detail = &FaultDetail{Kind: "NotFound"}
	case errors.As(err, &validationErr):
		fault.Detail = &FaultDetail{Kind: "Validation", Field: validationErr.Field}
	case errors.Is(err, errMalformed):
		fault.Detail = &FaultDetail{Kind: "BadRequest"}
	case errors.Is(err, errForbidden):
		fault.Detail = &FaultDetail{Kind: "Forbidden"}
	default:
		logger.Errorf("SOAP request failed: %v", err)
		fault = &Fault{Code: faultServer, String: "internal server error"}
	}
	// SOAP 1.1 reports every fault with HTTP 500.
	e.write(c, http.StatusInternalServerError, responseBody{Fault: fault})
}

func (e *Endpoint) write(c *gin.Context, status int, body responseBody) {
	out, err := xml.Marshal(responseEnvelope{SoapNS: soapNamespace, Body: body})
	if err != nil {
		logger.Errorf("encoding SOAP response: %v", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(status, "text/xml; charset=utf-8", append([]byte(xml.Header), out...))
}
