package rbac

// Simple default policy. Expand as needed.
var RolePermissions = map[string][]string{
	"student": {
		"exam:view",
		"simulation:create",
		"simulation:view-own",
		"attempt:create",
		"attempt:save",
		"attempt:submit",
		"attempt:view-own",
		"metadata:view",
		"media:view",
		"stats:view-own",
		"user:subscription",
	},
	"admin": {
		"*", // everything
	},
}
