package model

// Permission represents a string code for a specific system action.
type Permission string

const (
	// PermissionProfileWrite allows editing one's own profile and data spesifik.
	PermissionProfileWrite Permission = "profile:write"

	// PermissionRecordsReadOwn allows reading one's own penyakit and materi records.
	PermissionRecordsReadOwn Permission = "records:read_own"

	// PermissionMediaUpload allows uploading and deleting media through the relay.
	PermissionMediaUpload Permission = "media:upload"

	// PermissionCatalogRead allows reading tingkatan and jenis penyakit.
	PermissionCatalogRead Permission = "catalog:read"

	// PermissionUmumRead allows reading data umum documents.
	PermissionUmumRead Permission = "umum:read"

	// PermissionUsersRead allows listing users and viewing their profiles.
	PermissionUsersRead Permission = "users:read"

	// PermissionUsersApprove allows accepting or rejecting pending registrations.
	PermissionUsersApprove Permission = "users:approve"

	// PermissionUsersDelete allows removing user accounts.
	PermissionUsersDelete Permission = "users:delete"

	// PermissionUsersRole allows changing a user's role.
	PermissionUsersRole Permission = "users:role"

	// PermissionRecordsRead allows reading everyone's records.
	PermissionRecordsRead Permission = "records:read"

	// PermissionRecordsWrite allows creating, updating and deleting records.
	PermissionRecordsWrite Permission = "records:write"

	// PermissionCatalogWrite allows editing tingkatan, jenis penyakit and obat.
	PermissionCatalogWrite Permission = "catalog:write"

	// PermissionUmumWrite allows editing data umum documents and their files.
	PermissionUmumWrite Permission = "umum:write"
)

var userPermissions = []Permission{
	PermissionProfileWrite,
	PermissionRecordsReadOwn,
	PermissionMediaUpload,
	PermissionCatalogRead,
	PermissionUmumRead,
}

var adminPermissions = append(append([]Permission{}, userPermissions...),
	PermissionUsersRead,
	PermissionUsersApprove,
	PermissionUsersDelete,
	PermissionRecordsRead,
	PermissionRecordsWrite,
	PermissionCatalogWrite,
	PermissionUmumWrite,
)

// RolePermissions maps every role to the permissions embedded in its tokens.
var RolePermissions = map[Role][]Permission{
	RoleUser:       userPermissions,
	RoleAdmin:      adminPermissions,
	RoleSuperAdmin: append(append([]Permission{}, adminPermissions...), PermissionUsersRole),
}
