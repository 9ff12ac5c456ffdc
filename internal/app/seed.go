package app

import "dgconsult/api/internal/store"

// Launch content inserted by Bootstrap when SEED_CONTENT is set and the
// tables are empty.

var seedSectors = []store.Sector{
	{
		Title:         "Αγροδιατροφικός Τομέας",
		Slug:          "agrifood",
		Description:   "Λύσεις για ανάλυση δεδομένων πεδίου, παρακολούθηση παραγωγής, και έξυπνη διαχείριση πόρων (νερό, ενέργεια, καλλιέργειες).",
		FeaturedImage: "https://dgsmart.b-cdn.net/sectors/1769881002118-sector-agrifood.webp",
		IsFeatured:    true,
	},
	{
		Title:         "Βιομηχανία & Παραγωγή",
		Slug:          "industry",
		Description:   "Αυτοματοποίηση παραγωγικών διεργασιών, διαχείριση εφοδιαστικής αλυσίδας και συστήματα ποιοτικού ελέγχου.",
		FeaturedImage: "https://dgsmart.b-cdn.net/sectors/1769881003309-sector-industry.webp",
		IsFeatured:    true,
	},
	{
		Title:         "Εφοδιαστική Αλυσίδα",
		Slug:          "supply-chain",
		Description:   "Συστήματα ιχνηλασιμότητας από το χωράφι έως τον καταναλωτή με IoT, RFID και blockchain τεχνολογίες.",
		FeaturedImage: "https://dgsmart.b-cdn.net/sectors/1769881004027-sector-supply-chain.webp",
		IsFeatured:    true,
	},
	{
		Title:         "Βιωσιμότητα & Περιβάλλον",
		Slug:          "sustainability",
		Description:   "Εργαλεία μείωσης ανθρακικού αποτυπώματος, βελτιστοποίησης πόρων και πράσινων πρακτικών λειτουργίας.",
		FeaturedImage: "https://dgsmart.b-cdn.net/sectors/1769881004723-sector-sustainability.webp",
		IsFeatured:    true,
	},
}

var seedCaseStudies = []store.CaseStudy{
	{
		Title:         "Ψηφιακός Μετασχηματισμός Αγροτικού Συνεταιρισμού",
		Slug:          "agricultural-cooperative",
		Description:   "Υλοποίηση ολοκληρωμένου συστήματος παρακολούθησης καλλιεργειών και διαχείρισης πόρων.",
		Content:       "Η DGCONSULT σχεδίασε και υλοποίησε μια πρωτοποριακή πλατφόρμα για την ψηφιοποίηση των λειτουργιών ενός μεγάλου αγροτικού συνεταιρισμού. Το έργο περιελάμβανε την εγκατάσταση αισθητήρων IoT στο πεδίο, τη δημιουργία κεντρικού συστήματος διαχείρισης δεδομένων και την ανάπτυξη εφαρμογής για τους παραγωγούς.",
		FeaturedImage: "https://dgsmart.b-cdn.net/case-studies/1769881005657-case-study-1.webp",
		Category:      "Αγροδιατροφικός",
		ClientName:    "Αγροτικός Συνεταιρισμός Θεσσαλίας",
		Industry:      "Αγροδιατροφή",
		Technologies:  "IoT, Big Data, Mobile App, AI",
		Challenge:     "Ο συνεταιρισμός αντιμετώπιζε δυσκολίες στην παρακολούθηση της παραγωγής σε πραγματικό χρόνο και στην ορθολογική διαχείριση του νερού άρδευσης, με αποτέλεσμα υψηλό λειτουργικό κόστος και απώλειες στην παραγωγή.",
		Solution:      "Αναπτύξαμε ένα δίκτυο αισθητήρων υγρασίας εδάφους και μετεωρολογικών σταθμών, συνδεδεμένο με το Cloud. Μέσω αλγορίθμων τεχνητής νοημοσύνης, το σύστημα παρέχει εξατομικευμένες οδηγίες άρδευσης και λίπανσης σε κάθε παραγωγό.",
		Results:       "30% μείωση στην κατανάλωση νερού, 15% αύξηση της μέσης παραγωγικότητας και πλήρης ιχνηλασιμότητα των προϊόντων από το χωράφι έως τη συσκευασία.",
	},
	{
		Title:         "Σύστημα Ιχνηλασιμότητας για Βιομηχανία Τροφίμων",
		Slug:          "food-traceability",
		Description:   "End-to-end ιχνηλασιμότητα από πρώτες ύλες έως τελικό προϊόν με blockchain τεχνολογία.",
		Content:       "Για μια κορυφαία βιομηχανία επεξεργασίας τροφίμων, αναπτύξαμε ένα σύστημα ιχνηλασιμότητας βασισμένο σε blockchain, διασφαλίζοντας την απόλυτη διαφάνεια και ασφάλεια σε όλα τα στάδια της εφοδιαστικής αλυσίδας.",
		FeaturedImage: "https://dgsmart.b-cdn.net/case-studies/1769881006701-case-study-2.webp",
		Category:      "Βιομηχανία",
		ClientName:    "FoodTech Solutions S.A.",
		Industry:      "Επεξεργασία Τροφίμων",
		Technologies:  "Blockchain, RFID, QR Codes, ERP Integration",
		Challenge:     "Η ανάγκη για άμεση ανάκληση προϊόντων και η απαίτηση των καταναλωτών για πληροφορίες σχετικά με την προέλευση των πρώτων υλών καθιστούσαν το παραδοσιακό σύστημα ανεπαρκές.",
		Solution:      "Υλοποιήσαμε μια λύση όπου κάθε παρτίδα πρώτης ύλης λαμβάνει μια μοναδική ψηφιακή ταυτότητα. Όλη η διαδρομή καταγράφεται σε αμετάβλητο καθολικό (ledger), προσβάσιμο μέσω QR codes στις συσκευασίες.",
		Results:       "Μείωση χρόνου ανάκλησης από 48 ώρες σε 15 λεπτά, αύξηση εμπιστοσύνης καταναλωτών και συμμόρφωση με τα αυστηρότερα διεθνή πρότυπα ασφάλειας.",
	},
	{
		Title:         "Αυτοματοποίηση Παραγωγής Οινοποιείου",
		Slug:          "winery-automation",
		Description:   "Smart manufacturing λύσεις για βελτιστοποίηση ποιότητας και μείωση κόστους.",
		Content:       "Το οινοποιείο χρειαζόταν έναν τρόπο να ελέγχει με ακρίβεια τη διαδικασία ζύμωσης και αποθήκευσης, διασφαλίζοντας τη σταθερή ποιότητα των βραβευμένων οίνων του.",
		FeaturedImage: "https://dgsmart.b-cdn.net/case-studies/1769881007401-case-study-3.webp",
		Category:      "Παραγωγή",
		ClientName:    "Κτήμα Φωτεινό",
		Industry:      "Οινοποιία",
		Technologies:  "Sensors, Automation, Dashboard, Real-time Monitoring",
		Challenge:     "Οι διακυμάνσεις της θερμοκρασίας κατά τη ζύμωση και η έλλειψη ψηφιακής καταγραφής ιστορικών δεδομένων δυσκόλευαν τον έλεγχο ποιότητας.",
		Solution:      "Εγκαταστήσαμε αυτοματοποιημένα συστήματα ελέγχου θερμοκρασίας και πίεσης στις δεξαμενές, με κεντρικό έλεγχο από tablet και ειδοποιήσεις σε πραγματικό χρόνο για οποιαδήποτε απόκλιση.",
		Results:       "Εξάλειψη σφαλμάτων λόγω ανθρώπινου παράγοντα, 20% εξοικονόμηση ενέργειας και πλήρης ψηφιακός φάκελος κάθε παραγωγής.",
	},
}
