package database

import (
	"database/sql"
	"log"
)

// RunMigrations checks and applies necessary schema updates
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	// 1. Enforce one invoice per student per semester
	err := addInvoiceSemesterConstraint(db)
	if err != nil {
		return err
	}

	// 2. Enforce unique payment reference numbers
	err = addPaymentReferenceConstraint(db)
	if err != nil {
		return err
	}

	// 3. Add currency column to fee_structures if not exists
	err = addFeeStructureCurrencyColumn(db)
	if err != nil {
		return err
	}

	// 4. Add soft-delete columns to user_roles
	err = addUserRoleSoftDeleteColumns(db)
	if err != nil {
		return err
	}

	// 5. Let dropped enrollments be re-created
	err = relaxEnrollmentUniqueConstraint(db)
	if err != nil {
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func addInvoiceSemesterConstraint(db *sql.DB) error {
	query := `
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1
				FROM pg_constraint
				WHERE conname = 'invoices_student_semester_key'
			) THEN
				ALTER TABLE invoices ADD CONSTRAINT invoices_student_semester_key
					UNIQUE (student_id, semester_id);
				RAISE NOTICE 'Added unique (student_id, semester_id) constraint to invoices';
			END IF;
		END $$;
	`
	_, err := db.Exec(query)
	if err != nil {
		log.Printf("Failed to run migration for invoice semester constraint: %v", err)
		return err
	}
	return nil
}

func addPaymentReferenceConstraint(db *sql.DB) error {
	query := `
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1
				FROM pg_indexes
				WHERE indexname = 'payments_reference_number_key'
			) THEN
				CREATE UNIQUE INDEX payments_reference_number_key
					ON payments (reference_number)
					WHERE reference_number IS NOT NULL AND deleted_at IS NULL;
				RAISE NOTICE 'Added unique reference_number index to payments';
			END IF;
		END $$;
	`
	_, err := db.Exec(query)
	if err != nil {
		log.Printf("Failed to run migration for payment reference constraint: %v", err)
		return err
	}
	return nil
}

func addUserRoleSoftDeleteColumns(db *sql.DB) error {
	query := `
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1
				FROM information_schema.columns
				WHERE table_name = 'user_roles'
				AND column_name = 'deleted_at'
			) THEN
				ALTER TABLE user_roles
					ADD COLUMN created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
					ADD COLUMN updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
					ADD COLUMN deleted_at TIMESTAMP WITH TIME ZONE;
				RAISE NOTICE 'Added soft-delete columns to user_roles';
			END IF;
		END $$;

		CREATE UNIQUE INDEX IF NOT EXISTS user_roles_user_role_key
			ON user_roles (user_id, role_id)
			WHERE deleted_at IS NULL;
	`
	_, err := db.Exec(query)
	if err != nil {
		log.Printf("Failed to run migration for user_roles soft delete columns: %v", err)
		return err
	}
	return nil
}

func relaxEnrollmentUniqueConstraint(db *sql.DB) error {
	query := `
		DO $$
		BEGIN
			IF EXISTS (
				SELECT 1
				FROM pg_constraint
				WHERE conname = 'enrollments_student_id_course_id_semester_id_key'
			) THEN
				ALTER TABLE enrollments
					DROP CONSTRAINT enrollments_student_id_course_id_semester_id_key;
				RAISE NOTICE 'Dropped hard unique constraint on enrollments';
			END IF;
		END $$;

		CREATE UNIQUE INDEX IF NOT EXISTS enrollments_student_course_semester_key
			ON enrollments (student_id, course_id, semester_id)
			WHERE deleted_at IS NULL;
	`
	_, err := db.Exec(query)
	if err != nil {
		log.Printf("Failed to run migration for enrollments unique index: %v", err)
		return err
	}
	return nil
}

func addFeeStructureCurrencyColumn(db *sql.DB) error {
	query := `
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1
				FROM information_schema.columns
				WHERE table_name = 'fee_structures'
				AND column_name = 'currency'
			) THEN
				ALTER TABLE fee_structures ADD COLUMN currency VARCHAR(3) NOT NULL DEFAULT 'UGX';
				RAISE NOTICE 'Added currency column to fee_structures';
			END IF;
		END $$;
	`
	_, err := db.Exec(query)
	if err != nil {
		log.Printf("Failed to run migration for fee_structures currency column: %v", err)
		return err
	}
	return nil
}
