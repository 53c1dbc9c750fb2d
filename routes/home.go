/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"net/http"

	"github.com/flamego/flamego"
)

// Home sends the landing page straight to the report entry form.
func Home(c flamego.Context) {
	c.Redirect("/enter-report", http.StatusSeeOther)
}
