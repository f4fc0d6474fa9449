// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package directory

import (
	"fmt"

	"github.com/MKhiriev/codec-directory/models"
)

// fixtureFolders and fixtureContacts mirror a single phonebook search
// answer from a codec: 11 top-level folders and 10 top-level contacts.
func fixtureFolders() []models.FolderRecord {
	out := make([]models.FolderRecord, 0, 11)
	for i := 1; i <= 11; i++ {
		out = append(out, models.FolderRecord{
			ID:   fmt.Sprintf("localGroupId-%d", i),
			Name: fmt.Sprintf("Group %d", i),
		})
	}
	return out
}

func fixtureContacts() []models.ContactRecord {
	out := make([]models.ContactRecord, 0, 10)
	for i := 1; i <= 10; i++ {
		out = append(out, models.ContactRecord{
			ID:   fmt.Sprintf("localContactId-%d", i),
			Name: fmt.Sprintf("Room %d", i),
			DialMethods: []models.DialMethod{
				{Number: fmt.Sprintf("room%d@example.com", i), CallType: "Video"},
			},
		})
	}
	return out
}
