package rest_test

import (
	"context"

	"github.com/getkin/kin-openapi/openapi3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("OpenAPI document", func() {
	var doc *openapi3.T

	BeforeEach(func() {
		loader := openapi3.NewLoader()
		var err error
		doc, err = loader.LoadFromFile("../../../api/openapi.yml")
		Expect(err).NotTo(HaveOccurred())
	})

	It("validates against the OpenAPI 3 schema", func() {
		Expect(doc.Validate(context.Background())).To(Succeed())
	})

	It("documents the public verification endpoint", func() {
		path := doc.Paths.Find("/VisaApplications/verify/{referenceNumber}")
		Expect(path).NotTo(BeNil())
		Expect(path.Get).NotTo(BeNil())
	})

	It("requires authentication on state transitions", func() {
		for _, p := range []string{"/VisaApplications/{id}/approve", "/VisaApplications/{id}/reject"} {
			path := doc.Paths.Find(p)
			Expect(path).NotTo(BeNil(), p)
			Expect(path.Post).NotTo(BeNil(), p)
			Expect(path.Post.Security).NotTo(BeNil(), p)
		}
	})
})
