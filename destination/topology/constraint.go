// Copyright © 2023 Meroxa, Inc. & Yalantis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package topology

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

const createConstraintQueryTemplate = "CREATE CONSTRAINT %s IF NOT EXISTS FOR (n%s) REQUIRE n.%s IS UNIQUE"

var constraintNameReplacer = regexp.MustCompile(`[^A-Za-z0-9_]+`)

// EnsureConstraint creates a uniqueness constraint on the reference field of primary nodes.
// Nothing happens if the constraint already exists.
func EnsureConstraint(ctx context.Context, runner Runner, primaryLabel, referenceField string) error {
	name := strings.ToLower(constraintNameReplacer.ReplaceAllString(
		fmt.Sprintf("committer_%s_%s_unique", primaryLabel, referenceField), "_",
	))

	_, err := runner.Write(ctx, []Statement{{
		Query: fmt.Sprintf(createConstraintQueryTemplate, quote(name), labels(primaryLabel), quote(referenceField)),
	}})
	if err != nil {
		return fmt.Errorf("create constraint %q: %w", name, err)
	}

	return nil
}
