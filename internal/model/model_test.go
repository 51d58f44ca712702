package model

import (
	"slices"
	"testing"
)

func TestParseFoto(t *testing.T) {
	tests := []struct {
		name string
		raw  interface{}
		want *Foto
	}{
		{"nil", nil, nil},
		{"legacy url", "https://cdn.test/a.jpg", &Foto{URL: "https://cdn.test/a.jpg"}},
		{"empty string", "", nil},
		{"map", map[string]interface{}{"url": "https://cdn.test/b.jpg", "public_id": "uploads/b"}, &Foto{URL: "https://cdn.test/b.jpg", PublicID: "uploads/b"}},
		{"empty map", map[string]interface{}{}, nil},
		{"wrong type", 42, nil},
		{"value", Foto{URL: "u", PublicID: "p"}, &Foto{URL: "u", PublicID: "p"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseFoto(tt.raw)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Fatalf("got %+v, want %+v", *got, *tt.want)
			}
		})
	}
}

func TestPrepareForWriteStoresMap(t *testing.T) {
	d := &DataSpesifik{FotoRaw: "https://cdn.test/old.jpg"}
	d.NormalizeFoto()
	if d.Foto == nil || d.Foto.PublicID != "" {
		t.Fatalf("legacy foto should normalize without public_id, got %+v", d.Foto)
	}

	d.Foto = &Foto{URL: "https://cdn.test/new.jpg", PublicID: "uploads/new"}
	d.PrepareForWrite()
	m, ok := d.FotoRaw.(map[string]interface{})
	if !ok || m["url"] != "https://cdn.test/new.jpg" || m["public_id"] != "uploads/new" {
		t.Fatalf("unexpected stored foto %#v", d.FotoRaw)
	}

	d.Foto = nil
	d.PrepareForWrite()
	if d.FotoRaw != nil {
		t.Fatalf("cleared foto should store nil, got %#v", d.FotoRaw)
	}
}

func TestRolePermissions(t *testing.T) {
	user := RoleUser.Permissions()
	admin := RoleAdmin.Permissions()
	super := RoleSuperAdmin.Permissions()

	if slices.Contains(user, string(PermissionUsersRead)) {
		t.Fatalf("user must not read other users")
	}
	for _, p := range user {
		if !slices.Contains(admin, p) {
			t.Fatalf("admin missing user permission %s", p)
		}
	}
	if slices.Contains(admin, string(PermissionUsersRole)) {
		t.Fatalf("only super_admin changes roles")
	}
	if !slices.Contains(super, string(PermissionUsersRole)) {
		t.Fatalf("super_admin should change roles")
	}
	if len(Role("guest").Permissions()) != 0 || Role("guest").Valid() {
		t.Fatalf("unknown role should have no permissions")
	}
	if RoleUser.IsStaff() || !RoleAdmin.IsStaff() || !RoleSuperAdmin.IsStaff() {
		t.Fatalf("unexpected staff classification")
	}
}
