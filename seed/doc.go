// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package seed creates fake authors, questions and choices for demos.

Recipes describe one record and the records it depends on. Making a
ChoiceRecipe persists its QuestionRecipe, which persists its AuthorRecipe:

	s := seed.New(st, gofakeit.New(0))
	if err := s.Run(ctx, 100); err != nil {
		// chains made before the failure are kept
	}

Random timestamps fall within Window after the store clock.
*/
package seed
