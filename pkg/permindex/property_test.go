package permindex_test

import (
	"reflect"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/orgacl/aclview/pkg/acl"
	. "github.com/orgacl/aclview/pkg/permindex"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

// A small pool makes entities collide across apps and roles.
var (
	addressPool   = []string{}
	roleBytesPool = []string{}
)

func genPermissions() gopter.Gen {
	pick := func(pool []string) gopter.Gen {
		return gen.IntRange(0, len(pool)-1).Map(func(i int) string { return pool[i] })
	}

	genRole := gopter.CombineGens(
		pick(roleBytesPool),
		gen.SliceOf(pick(addressPool)),
		pick(addressPool),
	)

	genApp := gopter.CombineGens(
		pick(addressPool),
		gen.SliceOf(genRole),
	)

	return gen.SliceOf(genApp).Map(func(generated [][]interface{}) acl.Permissions {
		permissions := acl.Permissions{}
		for _, app := range generated {
			for _, role := range app[1].([][]interface{}) {
				permissions = permissions.Set(app[0].(string), role[0].(string), acl.RoleGrant{
					AllowedEntities: role[1].([]string),
					Manager:         role[2].(string),
				})
			}
		}
		return permissions
	})
}

func countPairs(permissions acl.Permissions, proxyAddress string) int {
	roles, _ := permissions.Lookup(proxyAddress)

	count := 0
	for _, role := range roles {
		count += len(role.AllowedEntities)
	}
	return count
}

func holdsAny(permissions acl.Permissions, entityAddress string) bool {
	for _, triple := range permissions.Triples() {
		if acl.AddressesEqual(triple.EntityAddress, entityAddress) {
			return true
		}
	}
	return false
}

var _ = Describe("Index properties", func() {
	var (
		properties *gopter.Properties
		apps       []acl.App
	)

	BeforeEach(func() {
		if len(addressPool) == 0 {
			for i := 0; i < 6; i++ {
				addressPool = append(addressPool, randomAddress())
			}
			addressPool = append(addressPool, acl.AnyEntityAddress, acl.BurnEntityAddress)
			for i := 0; i < 3; i++ {
				roleBytesPool = append(roleBytesPool, randomRoleBytes())
			}
			roleBytesPool = append(roleBytesPool, acl.KernelRoles[0].Bytes)
		}

		apps = []acl.App{
			{ProxyAddress: addressPool[0], Name: "Voting"},
			{ProxyAddress: addressPool[1], Name: "Finance"},
		}

		parameters := gopter.DefaultTestParameters()
		parameters.MinSuccessfulTests = 200
		properties = gopter.NewProperties(parameters)
	})

	It("returns one ByApp pair per allowed entity of the app", func() {
		properties.Property("by app length", prop.ForAll(
			func(permissions acl.Permissions) bool {
				idx := Build(permissions, apps)
				for _, address := range addressPool {
					if len(idx.ByApp(address)) != countPairs(permissions, address) {
						return false
					}
				}
				return true
			},
			genPermissions(),
		))

		Expect(properties.Run(gopter.NewFormatedReporter(false, 80, GinkgoWriter))).To(BeTrue())
	})

	It("returns nil from ByEntity exactly when the entity holds nothing", func() {
		properties.Property("by entity presence", prop.ForAll(
			func(permissions acl.Permissions) bool {
				idx := Build(permissions, apps)
				for _, address := range addressPool {
					roles := idx.ByEntity(address)
					if holdsAny(permissions, address) != (roles != nil) {
						return false
					}
					if roles != nil && len(roles) == 0 {
						return false
					}
				}
				return true
			},
			genPermissions(),
		))

		Expect(properties.Run(gopter.NewFormatedReporter(false, 80, GinkgoWriter))).To(BeTrue())
	})

	It("round-trips the multiset of triples", func() {
		properties.Property("round trip", prop.ForAll(
			func(permissions acl.Permissions) bool {
				return sameMultiset(Build(permissions, apps).Triples(), permissions.Triples())
			},
			genPermissions(),
		))

		Expect(properties.Run(gopter.NewFormatedReporter(false, 80, GinkgoWriter))).To(BeTrue())
	})

	It("builds the same roster every time", func() {
		properties.Property("stable roster", prop.ForAll(
			func(permissions acl.Permissions) bool {
				return reflect.DeepEqual(Build(permissions, apps).AllByEntity(), Build(permissions, apps).AllByEntity())
			},
			genPermissions(),
		))

		Expect(properties.Run(gopter.NewFormatedReporter(false, 80, GinkgoWriter))).To(BeTrue())
	})
})

func sameMultiset(first, second []acl.PermissionTriple) bool {
	if len(first) != len(second) {
		return false
	}

	counts := make(map[acl.PermissionTriple]int)
	for _, triple := range first {
		counts[triple]++
	}
	for _, triple := range second {
		counts[triple]--
	}
	for _, count := range counts {
		if count != 0 {
			return false
		}
	}
	return true
}
