package acl_test

import (
	. "github.com/orgacl/aclview/pkg/acl"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("App", func() {
	var (
		app App
	)

	BeforeEach(func() {
		app = App{
			ProxyAddress: "0xcafe000000000000000000000000000000000bee",
			Name:         "Finance",
			HasWebApp:    true,
			Roles: []Role{
				{Bytes: "0xAB", Name: "Create payments", ID: "CREATE_PAYMENTS_ROLE"},
			},
		}
	})

	Describe("#InstanceLabel", func() {
		It("labels internal apps as system apps", func() {
			app.IsAragonOsInternalApp = true
			Expect(app.InstanceLabel()).To(Equal("System App"))
		})

		It("labels apps without a web app as background apps", func() {
			app.HasWebApp = false
			Expect(app.InstanceLabel()).To(Equal("Background App"))
		})

		It("prefers the identifier", func() {
			app.Identifier = "main"
			Expect(app.InstanceLabel()).To(Equal("main"))
		})

		It("falls back to the shortened proxy address", func() {
			Expect(app.InstanceLabel()).To(Equal("0xcafe…0bee"))
		})
	})

	Describe("#FindRole", func() {
		It("matches role bytes regardless of case", func() {
			role, ok := app.FindRole("0xab")
			Expect(ok).To(BeTrue())
			Expect(role.Name).To(Equal("Create payments"))
		})

		It("reports a miss", func() {
			_, ok := app.FindRole("0xcd")
			Expect(ok).To(BeFalse())
		})
	})

	Describe("#FindApp", func() {
		It("matches the proxy address regardless of case", func() {
			found, ok := FindApp([]App{app}, "0xCAFE000000000000000000000000000000000BEE")
			Expect(ok).To(BeTrue())
			Expect(found.Name).To(Equal("Finance"))
		})
	})

	Describe("#NamedApps", func() {
		It("drops apps without a name", func() {
			unnamed := App{ProxyAddress: "0x1"}
			Expect(NamedApps([]App{unnamed, app})).To(Equal([]App{app}))
		})
	})
})

var _ = Describe("Role", func() {
	It("renders unresolved roles as Unknown", func() {
		Expect(RoleDisplayName(nil)).To(Equal("Unknown"))
		Expect(RoleDisplayName(&Role{})).To(Equal("Unknown"))
		Expect(RoleDisplayID(nil)).To(Equal("Unknown"))
	})

	It("knows the kernel app manager role", func() {
		known, ok := LookupKnownRole("0xB6D92708F3D4817AFC106147D969E229CED5C46E65E0A5002A0D391287762BD0")
		Expect(ok).To(BeTrue())
		Expect(known.AppName).To(Equal("Kernel"))
		Expect(known.Role.Name).To(Equal("Manage apps"))
		Expect(known.Role.ID).To(Equal("APP_MANAGER_ROLE"))
	})
})

var _ = Describe("Permissions", func() {
	var (
		permissions Permissions
	)

	BeforeEach(func() {
		permissions = Permissions{}.
			Set("0xA", "0x01", RoleGrant{AllowedEntities: []string{"0xX", "0xY"}, Manager: "0xM"}).
			Set("0xB", "0x02", RoleGrant{AllowedEntities: []string{"0xX"}, Manager: "0xM"})
	})

	Describe("#Set", func() {
		It("replaces an existing role grant in place", func() {
			permissions = permissions.Set("0xa", "0x01", RoleGrant{Manager: "0xN"})

			roles, ok := permissions.Lookup("0xA")
			Expect(ok).To(BeTrue())
			Expect(roles).To(HaveLen(1))
			Expect(roles[0].Manager).To(Equal("0xN"))
			Expect(roles[0].AllowedEntities).To(BeEmpty())
		})

		It("appends new roles after existing ones", func() {
			permissions = permissions.Set("0xA", "0x03", RoleGrant{Manager: "0xM"})

			roles, _ := permissions.Lookup("0xA")
			Expect(roles).To(HaveLen(2))
			Expect(roles[1].RoleBytes).To(Equal("0x03"))
		})
	})

	Describe("#Lookup", func() {
		It("reports unknown apps", func() {
			_, ok := permissions.Lookup("0xC")
			Expect(ok).To(BeFalse())
		})
	})

	Describe("#Triples", func() {
		It("flattens the mapping in declaration order", func() {
			Expect(permissions.Triples()).To(Equal([]PermissionTriple{
				{ProxyAddress: "0xa", RoleBytes: "0x01", EntityAddress: "0xx"},
				{ProxyAddress: "0xa", RoleBytes: "0x01", EntityAddress: "0xy"},
				{ProxyAddress: "0xb", RoleBytes: "0x02", EntityAddress: "0xx"},
			}))
		})
	})
})
