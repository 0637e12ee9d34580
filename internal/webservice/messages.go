package webservice

import (
	"catalogue/internal/course"
	"encoding/xml"
)

const (
	Namespace     = "http://example.com/catalogue/courses"
	soapNamespace = "http://schemas.xmlsoap.org/soap/envelope/"
)

type CourseXml struct {
	ID          int64  `xml:"id"`
	Name        string `xml:"name"`
	Category    string `xml:"category"`
	Rating      int    `xml:"rating"`
	Description string `xml:"description,omitempty"`
	Author      string `xml:"author"`
}

func toCourseXml(c course.Course) CourseXml {
	return CourseXml{
		ID:          c.ID,
		Name:        c.Name,
		Category:    c.Category,
		Rating:      c.Rating,
		Description: c.Description,
		Author:      c.Author,
	}
}

func toCourseXmlList(courses []course.Course) []CourseXml {
	result := make([]CourseXml, 0, len(courses))
	for _, c := range courses {
		result = append(result, toCourseXml(c))
	}
	return result
}

func (x CourseXml) toCourse() course.Course {
	return course.Course{
		ID:          x.ID,
		Name:        x.Name,
		Category:    x.Category,
		Rating:      x.Rating,
		Description: x.Description,
		Author:      x.Author,
	}
}

type GetAllCoursesRequest struct{}

type GetAllCoursesResponse struct {
	XMLName xml.Name    `xml:"http://example.com/catalogue/courses getAllCoursesResponse"`
	Courses []CourseXml `xml:"courses"`
}

type GetCourseByIdRequest struct {
	CourseID int64 `xml:"courseId"`
}

type GetCourseByIdResponse struct {
	XMLName xml.Name  `xml:"http://example.com/catalogue/courses getCourseByIdResponse"`
	Course  CourseXml `xml:"course"`
}

type SearchCoursesRequest struct {
	Name     string `xml:"name"`
	Category string `xml:"category"`
	Rating   int    `xml:"rating"`
}

type SearchCoursesResponse struct {
	XMLName xml.Name    `xml:"http://example.com/catalogue/courses searchCoursesResponse"`
	Courses []CourseXml `xml:"courses"`
}

type CreateCourseRequest struct {
	Course CourseXml `xml:"course"`
}

type CreateCourseResponse struct {
	XMLName xml.Name  `xml:"http://example.com/catalogue/courses createCourseResponse"`
	Course  CourseXml `xml:"course"`
}

type UpdateCourseRequest struct {
	CourseID int64     `xml:"courseId"`
	Course   CourseXml `xml:"course"`
}

type UpdateCourseResponse struct {
	XMLName xml.Name  `xml:"http://example.com/catalogue/courses updateCourseResponse"`
	Course  CourseXml `xml:"course"`
}

type DeleteCourseRequest struct {
	CourseID int64 `xml:"courseId"`
}

type DeleteCourseResponse struct {
	XMLName  xml.Name `xml:"http://example.com/catalogue/courses deleteCourseResponse"`
	CourseID int64    `xml:"courseId"`
}

type DeleteAllCoursesRequest struct{}

type DeleteAllCoursesResponse struct {
	XMLName xml.Name `xml:"http://example.com/catalogue/courses deleteAllCoursesResponse"`
}

type responseEnvelope struct {
	XMLName xml.Name     `xml:"soap:Envelope"`
	SoapNS  string       `xml:"xmlns:soap,attr"`
	Body    responseBody `xml:"soap:Body"`
}

type responseBody struct {
	Payload interface{}
	Fault   *Fault `xml:"soap:Fault,omitempty"`
}

type Fault struct {
	Code   string       `xml:"faultcode"`
	String string       `xml:"faultstring"`
	Detail *FaultDetail `xml:"detail,omitempty"`
}

type FaultDetail struct {
	Kind  string `xml:"kind"`
	Field string `xml:"field,omitempty"`
}
