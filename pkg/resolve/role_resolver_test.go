package resolve_test

import (
	"github.com/orgacl/aclview/pkg/acl"
	. "github.com/orgacl/aclview/pkg/resolve"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("RoleResolver", func() {
	var (
		finance    acl.App
		createRole acl.Role
		subject    *RoleResolver
	)

	BeforeEach(func() {
		createRole = acl.Role{
			Bytes: "0x5de467a460382d13defdc02aacddc9c7d6605d6d4e0b8bd2f70732cae8ea17bc",
			Name:  "Create new payments",
			ID:    "CREATE_PAYMENTS_ROLE",
		}
		finance = acl.App{
			ProxyAddress: randomAddress(),
			Name:         "Finance",
			Roles:        []acl.Role{createRole},
		}

		subject = NewRoleResolver([]acl.App{finance})
	})

	Describe("#Resolve", func() {
		It("resolves kernel roles without any app", func() {
			subject = NewRoleResolver(nil)

			role := subject.Resolve(randomAddress(), acl.KernelRoles[0].Bytes)

			Expect(role).NotTo(BeNil())
			Expect(role.Name).To(Equal("Manage apps"))
		})

		It("resolves roles declared by the app at the proxy address", func() {
			role := subject.Resolve(finance.ProxyAddress, createRole.Bytes)

			Expect(role).NotTo(BeNil())
			Expect(*role).To(Equal(createRole))
		})

		It("returns nil for roles the app does not declare", func() {
			Expect(subject.Resolve(finance.ProxyAddress, "0x01")).To(BeNil())
		})

		It("returns nil for roles on unknown apps", func() {
			Expect(subject.Resolve(randomAddress(), createRole.Bytes)).To(BeNil())
		})

		It("hands out copies of cached roles", func() {
			role := subject.Resolve(finance.ProxyAddress, createRole.Bytes)
			role.Name = "changed"

			Expect(subject.Resolve(finance.ProxyAddress, createRole.Bytes).Name).To(Equal("Create new payments"))
		})
	})

	Describe("#ResolveApp", func() {
		It("finds the app by proxy address", func() {
			app, ok := subject.ResolveApp(finance.ProxyAddress)
			Expect(ok).To(BeTrue())
			Expect(app.Name).To(Equal("Finance"))
		})
	})
})
