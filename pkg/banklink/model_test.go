// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package banklink

import "testing"

func TestRestrictionGroupKind(t *testing.T) {
	for _, k := range []RestrictionGroupKind{RestrictionCountry, RestrictionMcc, RestrictionMerchant} {
		if !k.Valid() {
			t.Errorf("%s should be valid", k)
		}
	}
	if RestrictionGroupKind("velocity").Valid() {
		t.Error("velocity is not a restriction group kind")
	}
	if RestrictionGroupKind("").Valid() {
		t.Error("empty kind is not valid")
	}
}
